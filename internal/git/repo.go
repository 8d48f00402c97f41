package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// validateRoot validates and normalizes a git repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	// Check for null bytes (potential injection)
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// Metadata identifies the revision a report was produced from.
type Metadata struct {
	Repo   string
	Commit string
	Branch string
}

// RepoMetadata returns (repo, commit, branch) best-effort for the given root.
// Empty strings are returned on failure.
func RepoMetadata(root string) Metadata {
	validRoot, err := validateRoot(root)
	if err != nil {
		return Metadata{}
	}
	var md Metadata
	if out, err := exec.Command("git", "-C", validRoot, "config", "--get", "remote.origin.url").Output(); err == nil {
		s := strings.TrimSuffix(strings.TrimSpace(string(out)), ".git")
		// keep owner/name when possible
		if i := strings.Index(s, "github.com/"); i >= 0 {
			s = s[i+len("github.com/"):]
		} else if i := strings.LastIndex(s, ":"); i >= 0 {
			s = s[i+1:]
		}
		md.Repo = s
	}
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "HEAD").Output(); err == nil {
		md.Commit = strings.TrimSpace(string(out))
	}
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "--abbrev-ref", "HEAD").Output(); err == nil {
		md.Branch = strings.TrimSpace(string(out))
	}
	return md
}

// TopLevel returns the working tree root containing dir. Paths reported by
// the selectors are relative to it. It falls back to dir itself.
func TopLevel(dir string) string {
	validRoot, err := validateRoot(dir)
	if err != nil {
		return dir
	}
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "--show-toplevel").Output(); err == nil {
		if s := strings.TrimSpace(string(out)); s != "" {
			return s
		}
	}
	if top, err := libraryTopLevel(validRoot); err == nil {
		return top
	}
	return validRoot
}
