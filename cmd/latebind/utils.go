package latebind

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/latebind/latebind/internal/config"
	"github.com/latebind/latebind/internal/rules"
)

// loadConfigs returns the layered file config: local wins over global.
// Missing files are not an error.
func loadConfigs(root string) config.FileConfig {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	} else if !errors.Is(err, config.ErrNoLocalConfig) {
		logger.Warnw("ignoring unreadable local config", "root", root, "error", err)
	}
	return config.Merge(lcfg, gcfg)
}

// changedString returns the flag's value only when set on the command line.
func changedString(cmd *cobra.Command, name, val string) *string {
	if cmd.Flags().Changed(name) {
		return &val
	}
	return nil
}

func changedBool(cmd *cobra.Command, name string, val bool) *bool {
	if cmd.Flags().Changed(name) {
		return &val
	}
	return nil
}

func changedInt(cmd *cobra.Command, name string, val int) *int {
	if cmd.Flags().Changed(name) {
		return &val
	}
	return nil
}

func deref(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func derefBool(p *bool) bool { return p != nil && *p }

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// ruleOptions maps merged config onto rule engine options after checking
// that every named rule exists.
func ruleOptions(fc config.FileConfig) (rules.Options, error) {
	opts := rules.Options{
		Enable:        deref(fc.Enable, ""),
		Disable:       deref(fc.Disable, ""),
		ContextTokens: fc.ContextTokens(),
	}
	if fc.EveryLine() {
		opts.ImplicitContext = rules.EveryLine
	}
	for _, list := range []string{opts.Enable, opts.Disable} {
		for _, id := range strings.Split(list, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := rules.Default().Lookup(id); !ok {
				return opts, fmt.Errorf("unknown rule %q (available: %s)", id, strings.Join(rules.IDs(), ", "))
			}
		}
	}
	return opts, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveRoot returns the absolute directory for -p.
func resolveRoot(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access %q: %w", p, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", p)
	}
	return abs, nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
