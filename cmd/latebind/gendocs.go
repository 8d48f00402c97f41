package latebind

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/rules"
)

const (
	rulesBegin = "<!-- BEGIN:RULES -->"
	rulesEnd   = "<!-- END:RULES -->"
)

// rulesMarkdown renders the rule list as a markdown table.
func rulesMarkdown() string {
	var b strings.Builder
	b.WriteString("| ID | Severity | Title |\n|----|----------|-------|\n")
	for _, r := range rules.Default().Rules() {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", r.ID, r.Severity, r.Title)
	}
	return b.String()
}

// spliceRules replaces the text between the rule markers.
func spliceRules(doc []byte) ([]byte, error) {
	i := bytes.Index(doc, []byte(rulesBegin))
	j := bytes.Index(doc, []byte(rulesEnd))
	if i < 0 || j < 0 || j <= i {
		return nil, fmt.Errorf("markers %s / %s not found", rulesBegin, rulesEnd)
	}
	var out bytes.Buffer
	out.Write(doc[:i+len(rulesBegin)])
	out.WriteString("\n" + rulesMarkdown())
	out.Write(doc[j:])
	return out.Bytes(), nil
}

// gendocs regenerates the rules table in README.md between the markers.
func init() {
	var path string
	cmd := &cobra.Command{
		Use:    "gendocs",
		Short:  "Regenerate the README rules table",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out, err := spliceRules(b)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "README.md", "markdown file to update")
	rootCmd.AddCommand(cmd)
}
