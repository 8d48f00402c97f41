package latebind

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/rules"
)

func init() {
	var ids bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if ids {
				fmt.Fprintln(out, strings.Join(rules.IDs(), "\n"))
				return nil
			}
			table := tablewriter.NewWriter(out)
			table.Header("ID", "Severity", "Title")
			for _, r := range rules.Default().Rules() {
				if err := table.Append([]string{r.ID, string(r.Severity), r.Title}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	cmd.Flags().BoolVar(&ids, "ids", false, "print rule IDs only")
	rootCmd.AddCommand(cmd)
}
