// Package tui is an interactive findings browser built on bubbletea.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/latebind/latebind/internal/types"
)

// Run shows findings until the user quits. Preferences are loaded before
// and saved after the session.
func Run(root string, findings []types.Finding, rescanFunc func() ([]types.Finding, error)) error {
	m := NewModel(root, findings, rescanFunc).WithPrefs(LoadPrefs())
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	if fm, ok := final.(Model); ok {
		_ = SavePrefs(fm.prefs)
	}
	return nil
}
