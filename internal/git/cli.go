package git

import (
	"os/exec"
	"strings"
)

// CLI selects files by running the git binary in Root.
type CLI struct {
	Root string
}

// ChangedFiles tries, in order, the three-dot diff against base, the last
// commit, and the staged set. The first non-empty list wins; a failing step
// counts as empty.
func (c CLI) ChangedFiles(base string) ([]string, error) {
	root, err := validateRoot(c.Root)
	if err != nil {
		return nil, err
	}
	steps := [][]string{
		{"diff", "--name-only", "-z", base + "...HEAD"},
		{"diff", "--name-only", "-z", "HEAD~1"},
		{"diff", "--name-only", "-z", "--cached"},
	}
	if base == "" {
		steps = steps[1:]
	}
	for _, args := range steps {
		if files := c.lines(root, args...); len(files) > 0 {
			return files, nil
		}
	}
	return nil, nil
}

// TrackedFiles lists the index via ls-files.
func (c CLI) TrackedFiles() ([]string, error) {
	root, err := validateRoot(c.Root)
	if err != nil {
		return nil, err
	}
	out, err := exec.Command("git", "-C", root, "ls-files", "-z").Output()
	if err != nil {
		return nil, err
	}
	return splitOutput(out), nil
}

func (c CLI) lines(root string, args ...string) []string {
	out, err := exec.Command("git", append([]string{"-C", root}, args...)...).Output()
	if err != nil {
		return nil
	}
	return splitOutput(out)
}

// splitOutput splits NUL-terminated -z output. Paths come back verbatim,
// without core.quotepath escaping.
func splitOutput(out []byte) []string {
	var files []string
	for _, l := range strings.Split(string(out), "\x00") {
		if l != "" {
			files = append(files, l)
		}
	}
	return files
}
