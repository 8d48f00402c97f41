package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/latebind/latebind/internal/report"
	"github.com/latebind/latebind/internal/types"
)

const maxContextLines = 20

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	sevP1Style = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevP2Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevP3Style = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type (
	statusMsg   string
	findingsMsg []types.Finding
)

// Model is the findings browser state.
type Model struct {
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model
	search   textinput.Model

	root       string
	findings   []types.Finding
	visible    []int // indices into findings after filtering
	rescanFunc func() ([]types.Finding, error)
	prefs      Prefs

	severityFilter types.Severity
	searchQuery    string
	searchMode     bool
	showHelp       bool
	scanning       bool
	ready          bool
	quitting       bool
	width, height  int
	statusMessage  string
}

// NewModel builds a model over findings. Paths are resolved against root
// when reading source context. rescanFunc may be nil.
func NewModel(root string, findings []types.Finding, rescanFunc func() ([]types.Finding, error)) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Sev", Width: 5},
			{Title: "Rule", Width: 22},
			{Title: "Location", Width: 40},
			{Title: "Title", Width: 38},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "path, rule or title..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "

	m := Model{
		table:      t,
		spinner:    sp,
		search:     ti,
		root:       root,
		findings:   findings,
		rescanFunc: rescanFunc,
		prefs:      DefaultPrefs(),
	}
	m.applyFilters()
	m.statusMessage = "q: quit | ?: help | 1/2/3: severity | /: search | c: copy | o: open | r: rescan"
	return m
}

// WithPrefs replaces the viewer preferences.
func (m Model) WithPrefs(p Prefs) Model {
	m.prefs = p
	m.updateViewportContent()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func severityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevP1:
		return sevP1Style
	case types.SevP2:
		return sevP2Style
	default:
		return sevP3Style
	}
}

func (m *Model) applyFilters() {
	query := strings.ToLower(m.searchQuery)
	m.visible = make([]int, 0, len(m.findings))
	for i, f := range m.findings {
		if m.severityFilter != "" && f.Severity != m.severityFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(f.Path), query) &&
			!strings.Contains(strings.ToLower(f.Rule), query) &&
			!strings.Contains(strings.ToLower(f.Title), query) {
			continue
		}
		m.visible = append(m.visible, i)
	}
	rows := make([]table.Row, len(m.visible))
	for i, idx := range m.visible {
		f := m.findings[idx]
		rows[i] = table.Row{string(f.Severity), f.Rule, report.Location(f), f.Title}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateViewportContent()
}

func (m *Model) clearFilters() {
	m.searchQuery = ""
	m.severityFilter = ""
	m.search.SetValue("")
	m.applyFilters()
}

// selected returns the finding under the cursor, or nil.
func (m Model) selected() *types.Finding {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return nil
	}
	f := m.findings[m.visible[c]]
	return &f
}

func (m Model) resolve(p string) string {
	if filepath.IsAbs(p) || m.root == "" {
		return p
	}
	return filepath.Join(m.root, p)
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	f := m.selected()
	if f == nil {
		m.viewport.SetContent(dimStyle.Render("No finding selected"))
		return
	}
	m.viewport.SetContent(m.detail(*f))
	m.viewport.GotoTop()
}

func (m Model) detail(f types.Finding) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.Title) + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Severity:"), severityStyle(f.Severity).Render(string(f.Severity)+" ("+f.Severity.Label()+")"))
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("Rule:"), f.Rule)
	fmt.Fprintf(&b, "%s %s\n\n", keyStyle.Render("Location:"), report.Location(f))
	b.WriteString(f.Body + "\n\n")

	lines, start, err := readFileContext(m.resolve(f.Path), f.Line, m.prefs.ContextLines)
	if err != nil {
		b.WriteString(dimStyle.Render("source unavailable: "+err.Error()) + "\n")
		return b.String()
	}
	for i, line := range lines {
		n := start + i
		marker := "  "
		if n == f.Line {
			marker = markerStyle.Render("> ")
		}
		if m.prefs.Highlight {
			line = highlightLine(line, f.Path)
		}
		fmt.Fprintf(&b, "%s%s %s\n", marker, dimStyle.Render(fmt.Sprintf("%4d", n)), line)
	}
	return b.String()
}

func (m *Model) resize() {
	tableHeight := m.height/2 - 4
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetHeight(tableHeight)
	m.table.SetWidth(m.width - 2)
	vpHeight := m.height - tableHeight - 8
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width-2, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 2
		m.viewport.Height = vpHeight
	}
	m.updateViewportContent()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		m.scanning = false
		m.statusMessage = string(msg)
		return m, nil

	case findingsMsg:
		m.scanning = false
		m.findings = []types.Finding(msg)
		m.applyFilters()
		m.statusMessage = fmt.Sprintf("Rescan complete: %d finding(s)", len(m.findings))
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "/":
			m.searchMode = true
			cmd := m.search.Focus()
			return m, cmd
		case "1", "2", "3":
			sev := types.Severity("P" + msg.String())
			if m.severityFilter == sev {
				sev = ""
			}
			m.severityFilter = sev
			m.applyFilters()
			return m, nil
		case "0", "esc":
			m.clearFilters()
			return m, nil
		case "+":
			if m.prefs.ContextLines < maxContextLines {
				m.prefs.ContextLines++
				m.updateViewportContent()
			}
			return m, nil
		case "-":
			if m.prefs.ContextLines > 1 {
				m.prefs.ContextLines--
				m.updateViewportContent()
			}
			return m, nil
		case "h":
			m.prefs.Highlight = !m.prefs.Highlight
			m.updateViewportContent()
			return m, nil
		case "c":
			return m, m.copyLocation()
		case "y":
			return m, m.copyFinding()
		case "o", "enter":
			return m, m.openEditor()
		case "r":
			if m.rescanFunc == nil {
				m.statusMessage = "Rescan not available"
				return m, nil
			}
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, m.rescan())
		case "J", "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		case "K", "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		}
	}

	var cmd tea.Cmd
	prev := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != prev {
		m.updateViewportContent()
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searchMode = false
		m.search.Blur()
		m.searchQuery = ""
		m.search.SetValue("")
		m.applyFilters()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.searchQuery = m.search.Value()
	m.applyFilters()
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpText())
	}

	s := types.Summarize(m.findings)
	stats := fmt.Sprintf("Showing: %d/%d  |  %s %d  |  %s %d  |  %s %d",
		len(m.visible), len(m.findings),
		sevP1Style.Render("P1:"), s.P1,
		sevP2Style.Render("P2:"), s.P2,
		sevP3Style.Render("P3:"), s.P3)
	if m.severityFilter != "" || m.searchQuery != "" {
		stats += dimStyle.Render(fmt.Sprintf("  [filter sev=%s search=%q]", m.severityFilter, m.searchQuery))
	}
	if len(m.findings) == 0 {
		stats = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓ No late-binding violations found")
	}

	status := m.statusMessage
	if m.scanning {
		status = m.spinner.View() + " Rescanning..."
	}
	var searchLine string
	if m.searchMode {
		searchLine = m.search.View() + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		stats,
		tableBorderStyle.Render(m.table.View()),
		searchLine+detailPaneBorderStyle.Render(m.viewport.View()),
		statusStyle.Width(m.width).Render(status),
	)
}

func helpText() string {
	rows := [][2]string{
		{"j/k, up/down", "move"},
		{"1 / 2 / 3", "toggle P1 / P2 / P3 filter"},
		{"/", "search path, rule, title"},
		{"0, esc", "clear filters"},
		{"+ / -", "more / less context"},
		{"h", "toggle highlighting"},
		{"c", "copy path:line"},
		{"y", "copy finding"},
		{"o, enter", "open in $EDITOR"},
		{"r", "rescan"},
		{"J / K", "scroll detail"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-14s %s\n", keyStyle.Render(r[0]), r[1])
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(1, 4).
		Render(b.String())
}
