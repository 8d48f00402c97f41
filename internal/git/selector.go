// Package git discovers which files a scan should look at: files changed
// relative to a base revision, or every tracked file. Two backends exist,
// one shelling out to the git binary and one built on go-git.
package git

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/latebind/latebind/internal/logging"
)

// Selector produces ordered, repository-relative candidate paths.
type Selector interface {
	ChangedFiles(base string) ([]string, error)
	TrackedFiles() ([]string, error)
}

// Backend names accepted by NewSelector.
const (
	BackendAuto    = "auto"
	BackendCLI     = "cli"
	BackendLibrary = "library"
)

// NewSelector returns the backend for root. "auto" (or empty) prefers the
// git binary when it is on PATH.
func NewSelector(root, backend string) (Selector, error) {
	switch backend {
	case "", BackendAuto:
		if _, err := exec.LookPath("git"); err == nil {
			return CLI{Root: root}, nil
		}
		return Library{Root: root}, nil
	case BackendCLI:
		return CLI{Root: root}, nil
	case BackendLibrary:
		return Library{Root: root}, nil
	}
	return nil, fmt.Errorf("unknown git backend %q (want auto, cli or library)", backend)
}

// Select runs the selector fail-open: any failure yields an empty list, which
// the aggregator turns into a passing report with zero files scanned.
func Select(sel Selector, base string, all bool, log *zap.SugaredLogger) []string {
	log = logging.OrNop(log)
	var (
		paths []string
		err   error
	)
	if all {
		paths, err = sel.TrackedFiles()
	} else {
		paths, err = sel.ChangedFiles(base)
	}
	if err != nil {
		log.Debugw("file selection failed; continuing with no files", "all", all, "base", base, "error", err)
		return nil
	}
	log.Debugw("files selected", "all", all, "base", base, "count", len(paths))
	return paths
}
