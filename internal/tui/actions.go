package tui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/latebind/latebind/internal/report"
)

func (m Model) rescan() tea.Cmd {
	fn := m.rescanFunc
	return func() tea.Msg {
		fs, err := fn()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return findingsMsg(fs)
	}
}

// copyLocation copies path:line of the current finding.
func (m Model) copyLocation() tea.Cmd {
	f := m.selected()
	if f == nil {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}
	loc := report.Location(*f)
	return func() tea.Msg {
		if err := clipboard.WriteAll(loc); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied: " + loc)
	}
}

// copyFinding copies a plain-text rendering of the current finding.
func (m Model) copyFinding() tea.Cmd {
	f := m.selected()
	if f == nil {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}
	text := fmt.Sprintf("[%s] %s (%s)\n%s\n%s\n", f.Severity, f.Title, f.Rule, report.Location(*f), f.Body)
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied finding")
	}
}

// editorArgs builds the argument list that opens path at line for the
// given editor binary.
func editorArgs(editor, path string, line int) []string {
	if line < 1 {
		line = 1
	}
	switch filepath.Base(editor) {
	case "code", "code-insiders":
		return []string{"-g", fmt.Sprintf("%s:%d", path, line)}
	case "subl", "sublime_text":
		return []string{fmt.Sprintf("%s:%d", path, line)}
	default:
		// vi, vim, nvim, nano, emacs and most others accept +line
		return []string{fmt.Sprintf("+%d", line), path}
	}
}

func (m Model) openEditor() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	c := exec.Command(editor, editorArgs(editor, m.resolve(f.Path), f.Line)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return statusMsg(fmt.Sprintf("Error opening editor: %v", err))
		}
		return statusMsg("Editor closed")
	})
}
