package engine

import (
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/latebind/latebind/internal/ignore"
)

// Candidates narrows cfg.Paths to the files the rule engine will see, in
// input order: recognized extension, present on disk as a regular file, and
// not excluded by globs, default excludes or the ignore file. The filter is
// a precondition of evaluation, never a post-filter on findings.
func Candidates(cfg Config) []string {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	seen := make(map[string]bool, len(cfg.Paths))
	var out []string
	for _, p := range cfg.Paths {
		if p == "" || seen[p] {
			continue
		}
		if !eligible(p, cfg, ign) {
			continue
		}
		info, err := os.Stat(resolve(cfg.Root, p))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// eligible applies every path-only check.
func eligible(p string, cfg Config, ign ignore.Matcher) bool {
	if !Scannable(p) {
		return false
	}
	rel := filepath.ToSlash(p)
	if !allowedByGlobs(rel, cfg) {
		return false
	}
	if ign.Match(rel) {
		return false
	}
	if cfg.DefaultExcludes && isDefaultExcluded(rel) {
		return false
	}
	return true
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
