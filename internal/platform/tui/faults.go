package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/turtle/internal/storage"
)

// Fault browser layout constants
const (
	dateColumnWidth = 18
	minGameWidth    = 12
	detailMinHeight = 4
)

// FaultsKeyMap defines the key bindings for the fault browser.
type FaultsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FaultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k FaultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultFaultsKeyMap returns default key bindings.
func DefaultFaultsKeyMap() FaultsKeyMap {
	return FaultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "newer"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "older"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FaultsModel lists recorded faults with the selected message in full.
type FaultsModel struct {
	faults   []storage.Fault
	table    table.Model
	help     help.Model
	keys     FaultsKeyMap
	width    int
	height   int
	quitting bool
}

// NewFaultsModel creates a fault browser for faults, newest first.
func NewFaultsModel(faults []storage.Fault, width, height int) FaultsModel {
	m := FaultsModel{
		faults: faults,
		help:   help.New(),
		keys:   DefaultFaultsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable sizes the columns to the terminal.
func (m *FaultsModel) createTable() table.Model {
	gameWidth := max(m.width/3, minGameWidth)
	messageWidth := max(m.width-dateColumnWidth-gameWidth-10, 10)
	columns := []table.Column{
		{Title: "Date", Width: dateColumnWidth},
		{Title: "Game", Width: gameWidth},
		{Title: "Fault", Width: messageWidth},
	}

	rows := make([]table.Row, len(m.faults))
	for i, f := range m.faults {
		rows[i] = table.Row{
			f.CreatedAt.Format("Jan 02 15:04:05"),
			ansi.Truncate(f.GameID, gameWidth, "…"),
			firstLine(f.Message),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max((m.height-6)/2, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// Init initializes the fault browser.
func (m FaultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the fault browser.
func (m FaultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the fault under the cursor.
func (m FaultsModel) Selected() (storage.Fault, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.faults) {
		return storage.Fault{}, false
	}
	return m.faults[i], true
}

// View renders the fault browser.
func (m FaultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("SCRIPT FAULTS"))
	b.WriteString("\n")

	if len(m.faults) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(emptyStyle.Render("No faults recorded."))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderDetail shows the selected message wrapped to the terminal.
func (m FaultsModel) renderDetail() string {
	f, ok := m.Selected()
	if !ok {
		return ""
	}
	width := max(m.width-4, 20)
	height := max(m.height-m.table.Height()-8, detailMinHeight)

	lines := strings.Split(ansi.Wrap(ansi.Strip(f.Message), width, ""), "\n")
	if len(lines) > height {
		lines = append(lines[:height-1], "…")
	}
	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	return detailStyle.Render(strings.Join(lines, "\n"))
}

// RunFaults runs the fault browser until the user quits.
func RunFaults(faults []storage.Fault, width, height int) error {
	p := tea.NewProgram(
		NewFaultsModel(faults, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
