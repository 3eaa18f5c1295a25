package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/frame"
)

// maxFrameDelta caps the step after a stall so physics does not jump.
const maxFrameDelta = 250 * time.Millisecond

// Model is the Bubble Tea model for running a game session.
type Model struct {
	orch    *frame.Orchestrator
	st      *engine.State
	keys    KeyMap
	painter *Painter
	fps     int

	last     time.Time
	quitting bool
}

// NewModel creates a new Bubble Tea model for the session. A nil painter
// renders with the default lipgloss renderer.
func NewModel(orch *frame.Orchestrator, st *engine.State, painter *Painter) Model {
	fps := st.Config.Window.FPS
	if fps <= 0 {
		fps = 60
	}
	if painter == nil {
		painter = NewPainter(nil)
	}
	return Model{
		orch:    orch,
		st:      st,
		keys:    DefaultKeyMap(),
		painter: painter,
		fps:     fps,
	}
}

// Init starts the tick loop and sets the terminal title.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.fps)}
	if title, ok := m.st.Window.TakeTitle(); ok {
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.st.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		m.st.Window.SetFocus(true)
		return m, nil

	case tea.BlurMsg:
		m.st.Window.SetFocus(false)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.st.RequestClose()
		return m, nil
	}
	if m.orch.Phase() == frame.ErrorHalted && key.Matches(msg, m.keys.Dismiss) {
		m.st.RequestClose()
		return m, nil
	}

	for _, name := range KeyNames(msg) {
		m.st.Input.KeyPress(name)
	}
	return m, nil
}

// handleMouse maps cell coordinates to logical pixels and records buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.st.Canvas.ToLogical(msg.X, msg.Y)
	m.st.Input.MoveMouse(p.X, p.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.st.Input.Scroll(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.st.Input.Scroll(-1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if b, ok := MouseButton(msg.Button); ok {
			m.st.Input.MousePress(b)
		}
	case tea.MouseActionRelease:
		// Some terminals do not say which button went up.
		if b, ok := MouseButton(msg.Button); ok {
			m.st.Input.MouseRelease(b)
		} else {
			m.st.Input.ReleaseAllMouse()
		}
	}
	return m, nil
}

// handleTick runs one frame and applies window changes the script made.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.fps)
	if !m.last.IsZero() {
		dt = max(min(now.Sub(m.last), maxFrameDelta), 0)
	}
	m.last = now

	if !m.orch.Tick(dt) {
		m.quitting = true
		return m, tea.Quit
	}

	cmds := []tea.Cmd{tickCmd(m.fps)}
	if title, ok := m.st.Window.TakeTitle(); ok {
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	if on, ok := m.st.Window.TakeFullscreen(); ok {
		if on {
			cmds = append(cmds, tea.EnterAltScreen)
		} else {
			cmds = append(cmds, tea.ExitAltScreen)
		}
	}
	return m, tea.Batch(cmds...)
}

// View renders the last presented frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.painter.Render(m.st.Canvas.Front())
}

// Run starts the Bubble Tea program for a local session and returns once
// the session has closed.
func Run(orch *frame.Orchestrator, st *engine.State) error {
	p := tea.NewProgram(
		NewModel(orch, st, nil),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	if shutdownErr := orch.Shutdown(); err == nil {
		err = shutdownErr
	}
	return err
}
