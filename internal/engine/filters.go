package engine

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/latebind/latebind/internal/ignore"
)

// scannableExts is the extension allow-list. Files outside it are never
// handed to the rule engine.
var scannableExts = map[string]bool{
	".py":  true,
	".ts":  true,
	".tsx": true,
	".sql": true,
	".js":  true,
	".jsx": true,
}

// Scannable reports whether path carries a recognized extension.
func Scannable(path string) bool {
	return scannableExts[filepath.Ext(path)]
}

// Extensions lists the recognized extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(scannableExts))
	for ext := range scannableExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
	".next":        true,
}

// bundled or generated outputs that are noisy when default excludes are on
var defaultExcludeFileSuffixes = []string{
	".min.js", ".bundle.js", ".d.ts",
}

// IsDefaultDirExcluded reports whether a directory name is skipped when
// default excludes are enabled. The watcher also uses it.
func IsDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

func isDefaultExcluded(rel string) bool {
	lower := strings.ToLower(filepath.ToSlash(rel))
	parts := strings.Split(lower, "/")
	for _, dir := range parts[:len(parts)-1] {
		if IsDefaultDirExcluded(dir) {
			return true
		}
	}
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return strings.Contains(parts[len(parts)-1], ".gen.")
}

var noIgnore ignore.Matcher
