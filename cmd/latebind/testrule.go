package latebind

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/report"
	"github.com/latebind/latebind/internal/rules"
)

func init() {
	var name string
	cmd := &cobra.Command{
		Use:   "test-rule <id>",
		Short: "Run one rule against text from stdin",
		Long: "Reads stdin and evaluates a single rule as if the text were a file named by --name. " +
			"Available rules: " + strings.Join(rules.IDs(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fs, ok := rules.EvaluateRule(args[0], name, data)
			if !ok {
				return fmt.Errorf("unknown rule id: %s (available: %s)", args[0], strings.Join(rules.IDs(), ", "))
			}
			return report.PrintTable(cmd.OutOrStdout(), fs, report.PrintOptions{NoColor: flagNoColor || !isTerminal(cmd.OutOrStdout())})
		},
	}
	cmd.Flags().StringVar(&name, "name", "stdin.py", "file name used for extension checks and reporting")
	rootCmd.AddCommand(cmd)
}
