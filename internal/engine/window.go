package engine

import "github.com/vovakirdan/turtle/internal/config"

// Window is the script's view of the terminal window. Terminals cannot be
// moved or resized by the program, so position, size limits and the
// maximized state are remembered and reported back, while title and
// fullscreen changes are handed to the front end.
type Window struct {
	title      string
	width      int
	height     int
	cols, rows int
	x, y       int
	minW, minH int

	vsync      bool
	fullscreen bool
	resizable  bool
	maximized  bool
	minimized  bool
	focused    bool
	resized    bool

	grabbed      bool
	cursorHidden bool

	titleChanged      bool
	fullscreenChanged bool
}

// NewWindow creates the window state from cfg on a cols x rows terminal.
func NewWindow(cfg config.WindowConfig, cols, rows int) *Window {
	return &Window{
		title:   cfg.Title,
		width:   cfg.Width,
		height:  cfg.Height,
		cols:    cols,
		rows:    rows,
		vsync:   cfg.VSync,
		focused: true,
	}
}

func (w *Window) resize(cols, rows int) {
	if cols == w.cols && rows == w.rows {
		return
	}
	w.cols, w.rows = cols, rows
	w.resized = true
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle changes the title.
func (w *Window) SetTitle(title string) {
	if title != w.title {
		w.title = title
		w.titleChanged = true
	}
}

// TakeTitle returns the title and true once after each change.
func (w *Window) TakeTitle() (string, bool) {
	changed := w.titleChanged
	w.titleChanged = false
	return w.title, changed
}

// Size returns the logical window size.
func (w *Window) Size() (int, int) { return w.width, w.height }

// DisplaySize returns the terminal size in cells.
func (w *Window) DisplaySize() (int, int) { return w.cols, w.rows }

// Position returns the last position set by the script.
func (w *Window) Position() (int, int) { return w.x, w.y }

// SetPosition records a window position.
func (w *Window) SetPosition(x, y int) { w.x, w.y = x, y }

// Fullscreen reports whether fullscreen (the alternate screen) is on.
func (w *Window) Fullscreen() bool { return w.fullscreen }

// SetFullscreen switches fullscreen on or off.
func (w *Window) SetFullscreen(on bool) {
	if on != w.fullscreen {
		w.fullscreen = on
		w.fullscreenChanged = true
	}
}

// TakeFullscreen returns the fullscreen flag and true once after each
// change.
func (w *Window) TakeFullscreen() (bool, bool) {
	changed := w.fullscreenChanged
	w.fullscreenChanged = false
	return w.fullscreen, changed
}

// VSync reports the vsync flag.
func (w *Window) VSync() bool { return w.vsync }

// SetVSync sets the vsync flag.
func (w *Window) SetVSync(on bool) { w.vsync = on }

// Resizable reports the resizable flag.
func (w *Window) Resizable() bool { return w.resizable }

// SetResizable sets the resizable flag.
func (w *Window) SetResizable(on bool) { w.resizable = on }

// MinSize returns the minimum size set by the script.
func (w *Window) MinSize() (int, int) { return w.minW, w.minH }

// SetMinSize records a minimum size.
func (w *Window) SetMinSize(width, height int) { w.minW, w.minH = width, height }

// Maximize marks the window maximized.
func (w *Window) Maximize() { w.maximized, w.minimized = true, false }

// Minimize marks the window minimized.
func (w *Window) Minimize() { w.maximized, w.minimized = false, true }

// Restore clears the maximized and minimized states.
func (w *Window) Restore() { w.maximized, w.minimized = false, false }

// Maximized reports the maximized state.
func (w *Window) Maximized() bool { return w.maximized }

// Minimized reports the minimized state.
func (w *Window) Minimized() bool { return w.minimized }

// Visible reports whether the window is visible.
func (w *Window) Visible() bool { return !w.minimized }

// Focused reports whether the terminal has focus.
func (w *Window) Focused() bool { return w.focused }

// SetFocus records a focus change reported by the terminal.
func (w *Window) SetFocus(on bool) { w.focused = on }

// Resized reports whether the terminal was resized since the last frame.
func (w *Window) Resized() bool { return w.resized }

// EndFrame clears per-frame flags.
func (w *Window) EndFrame() { w.resized = false }

// CursorGrabbed reports whether the script grabbed the mouse.
func (w *Window) CursorGrabbed() bool { return w.grabbed }

// SetCursorGrabbed records a grab change.
func (w *Window) SetCursorGrabbed(on bool) { w.grabbed = on }

// CursorVisible reports whether the mouse cursor is shown.
func (w *Window) CursorVisible() bool { return !w.cursorHidden }

// SetCursorVisible shows or hides the mouse cursor.
func (w *Window) SetCursorVisible(on bool) { w.cursorHidden = !on }
