package latebind

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/update"
)

func init() {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update latebind to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if checkOnly {
				latest, newer, err := update.Check(version, false)
				if err != nil {
					return fmt.Errorf("check for updates: %w", err)
				}
				if newer {
					fmt.Fprintf(out, "v%s available (current v%s); run 'latebind update'\n", latest, version)
				} else {
					fmt.Fprintf(out, "latebind v%s is up to date\n", version)
				}
				return nil
			}
			installed, err := update.Apply(version)
			if err != nil {
				return fmt.Errorf("self update: %w", err)
			}
			if !update.Newer(installed, version) {
				fmt.Fprintf(out, "latebind v%s is up to date\n", version)
				return nil
			}
			fmt.Fprintf(out, "updated to v%s\n", installed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether a newer release exists")
	rootCmd.AddCommand(cmd)
}
