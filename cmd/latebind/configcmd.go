package latebind

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/latebind/latebind/internal/config"
)

var (
	cfgOutput    string
	cfgBase      string
	cfgEnable    string
	cfgDisable   string
	cfgThreads   int
	cfgEveryLine bool
	cfgTemplate  bool
	cfgForce     bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .latebind.yml",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".latebind.yml", "output file path")
	initCmd.Flags().StringVar(&cfgBase, "base", defaultBase, "base revision for changed-file selection")
	initCmd.Flags().StringVar(&cfgEnable, "enable", "", "comma-separated rule IDs to enable")
	initCmd.Flags().StringVar(&cfgDisable, "disable", "", "comma-separated rule IDs to disable")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().BoolVar(&cfgEveryLine, "every-line", false, "report every implicit-context line")
	initCmd.Flags().BoolVar(&cfgTemplate, "template", false, "write the commented starter template instead")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration for a path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveRoot(flagPath)
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(loadConfigs(root))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	showCmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository path")
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	var b []byte
	if cfgTemplate {
		b = []byte(config.Template)
	} else {
		fc := config.FileConfig{
			Base:    strPtr(cfgBase),
			Enable:  optStrPtr(cfgEnable),
			Disable: optStrPtr(cfgDisable),
			Threads: intPtr(cfgThreads),
		}
		if cfgEveryLine {
			fc.ImplicitContext = &config.ImplicitContextConfig{EveryLine: boolPtr(true)}
		}
		if _, err := ruleOptions(fc); err != nil {
			return err
		}
		out, err := yaml.Marshal(&fc)
		if err != nil {
			return err
		}
		b = out
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}
