package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoLocalConfig is returned by LoadLocal when the root has no config file.
var ErrNoLocalConfig = errors.New("no local config")

// FileConfig is the on-disk YAML configuration shape. Nil fields are unset
// so that layers can be merged.
type FileConfig struct {
	Base            *string `yaml:"base,omitempty"`
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	Enable          *string `yaml:"enable,omitempty"`
	Disable         *string `yaml:"disable,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
	GitBackend      *string `yaml:"git_backend,omitempty"`

	ImplicitContext *ImplicitContextConfig `yaml:"implicit_context,omitempty"`
}

// ImplicitContextConfig tunes the implicit-context rule.
type ImplicitContextConfig struct {
	// EveryLine reports every matching line instead of only the first.
	EveryLine *bool `yaml:"every_line,omitempty"`
	// Tokens replaces the default list of context identifiers.
	Tokens []string `yaml:"tokens,omitempty"`
}

// LocalNames are the repo-local file names, in lookup order.
var LocalNames = []string{".latebind.yml", ".latebind.yaml", "latebind.yml", "latebind.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNoLocalConfig
}

// GlobalPath returns the global config location, or "" when neither
// XDG_CONFIG_HOME nor a home directory is available.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "latebind", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge layers configs, earlier arguments taking precedence field by field.
func Merge(layers ...FileConfig) FileConfig {
	var out FileConfig
	for _, l := range layers {
		out.Base = firstString(out.Base, l.Base)
		out.Include = firstString(out.Include, l.Include)
		out.Exclude = firstString(out.Exclude, l.Exclude)
		out.Enable = firstString(out.Enable, l.Enable)
		out.Disable = firstString(out.Disable, l.Disable)
		out.GitBackend = firstString(out.GitBackend, l.GitBackend)
		out.NoColor = firstBool(out.NoColor, l.NoColor)
		out.DefaultExcludes = firstBool(out.DefaultExcludes, l.DefaultExcludes)
		if out.Threads == nil {
			out.Threads = l.Threads
		}
		if l.ImplicitContext != nil {
			if out.ImplicitContext == nil {
				out.ImplicitContext = &ImplicitContextConfig{}
			}
			out.ImplicitContext.EveryLine = firstBool(out.ImplicitContext.EveryLine, l.ImplicitContext.EveryLine)
			if len(out.ImplicitContext.Tokens) == 0 {
				out.ImplicitContext.Tokens = l.ImplicitContext.Tokens
			}
		}
	}
	return out
}

// EveryLine reports whether implicit-context matches are reported per line.
func (fc FileConfig) EveryLine() bool {
	if fc.ImplicitContext == nil || fc.ImplicitContext.EveryLine == nil {
		return false
	}
	return *fc.ImplicitContext.EveryLine
}

// ContextTokens returns the configured identifiers, or nil for the defaults.
func (fc FileConfig) ContextTokens() []string {
	if fc.ImplicitContext == nil {
		return nil
	}
	return fc.ImplicitContext.Tokens
}

func firstString(cur, next *string) *string {
	if cur != nil {
		return cur
	}
	return next
}

func firstBool(cur, next *bool) *bool {
	if cur != nil {
		return cur
	}
	return next
}

// Template is the starter file written by "latebind config init".
const Template = `# latebind configuration
# CLI flags override this file; this file overrides ~/.config/latebind/config.yml.

# Revision that changed files are compared against when --all is not set.
base: origin/main

# Comma-separated globs narrowing the candidate list.
# include: "src/**,migrations/**"
# exclude: "**/fixtures/**"

# Skip vendored and generated paths (node_modules, dist, *.min.js, ...).
default_excludes: false

# Rule selection by ID (comma-separated).
# enable: ledger-overwrite,mutable-event-table
# disable: implicit-context

# threads: 4
# no_color: false

# auto | cli | library
git_backend: auto

implicit_context:
  every_line: false
  # tokens: [current_user, CURRENT_USER, current_tenant]
`
