package core

import "time"

// Mouse buttons, numbered as scripts see them.
const (
	MouseLeft = iota
	MouseRight
	MouseMiddle
	mouseButtons
)

// keyNames lists the key names scripts may query.
var keyNames = func() map[string]bool {
	names := []string{
		"space", "up", "down", "left", "right", "home", "end", "pageup",
		"pagedown", "insert", "backspace", "tab", "return", "delete",
		"numlock", "capslock", "scolllock", "rshift", "lshift", "rctrl",
		"lctrl", "ralt", "lalt", "lsuper", "rsuper", "escape",
	}
	m := make(map[string]bool, len(names)+48)
	for _, n := range names {
		m[n] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = true
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = true
	}
	for i := 1; i <= 12; i++ {
		m["f"+itoa(i)] = true
	}
	return m
}()

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return string(rune('0'+i/10)) + string(rune('0'+i%10))
}

// IsKey reports whether name is a known key name.
func IsKey(name string) bool {
	return keyNames[name]
}

type buttonState struct {
	down     bool
	pressed  bool
	released bool
	seen     time.Duration
}

// Input tracks keyboard and mouse state across frames.
//
// Terminals report key presses but not releases, so a key stays down for a
// hold window after its last press (auto-repeat keeps refreshing it) and is
// reported released on the frame the window expires.
type Input struct {
	keys   map[string]*buttonState
	mouse  [mouseButtons]buttonState
	hold   time.Duration
	clock  time.Duration
	mouseX float64
	mouseY float64
	wheel  float64
}

// NewInput creates an input tracker with the given key hold window.
func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = 300 * time.Millisecond
	}
	return &Input{
		keys: make(map[string]*buttonState),
		hold: hold,
	}
}

// KeyPress records a press (or auto-repeat) of the named key.
func (in *Input) KeyPress(name string) {
	st, ok := in.keys[name]
	if !ok {
		st = &buttonState{}
		in.keys[name] = st
	}
	if !st.down {
		st.down = true
		st.pressed = true
	}
	st.seen = in.clock
}

// KeyDown reports whether the key is held.
func (in *Input) KeyDown(name string) bool {
	st, ok := in.keys[name]
	return ok && st.down
}

// KeyPressed reports whether the key went down this frame.
func (in *Input) KeyPressed(name string) bool {
	st, ok := in.keys[name]
	return ok && st.pressed
}

// KeyReleased reports whether the key went up this frame.
func (in *Input) KeyReleased(name string) bool {
	st, ok := in.keys[name]
	return ok && st.released
}

// MousePress records a button press. Unknown buttons are ignored.
func (in *Input) MousePress(button int) {
	if button < 0 || button >= mouseButtons {
		return
	}
	st := &in.mouse[button]
	if !st.down {
		st.pressed = true
	}
	st.down = true
}

// MouseRelease records a button release.
func (in *Input) MouseRelease(button int) {
	if button < 0 || button >= mouseButtons {
		return
	}
	st := &in.mouse[button]
	if st.down {
		st.released = true
	}
	st.down = false
}

// ReleaseAllMouse releases every held button, for terminals that report
// a release without naming the button.
func (in *Input) ReleaseAllMouse() {
	for b := range in.mouse {
		in.MouseRelease(b)
	}
}

// MouseDown reports whether the button is held.
func (in *Input) MouseDown(button int) bool {
	return button >= 0 && button < mouseButtons && in.mouse[button].down
}

// MousePressed reports whether the button went down this frame.
func (in *Input) MousePressed(button int) bool {
	return button >= 0 && button < mouseButtons && in.mouse[button].pressed
}

// MouseReleased reports whether the button went up this frame.
func (in *Input) MouseReleased(button int) bool {
	return button >= 0 && button < mouseButtons && in.mouse[button].released
}

// MoveMouse sets the pointer position in logical pixels.
func (in *Input) MoveMouse(x, y float64) {
	in.mouseX, in.mouseY = x, y
}

// MousePosition returns the pointer position in logical pixels.
func (in *Input) MousePosition() (float64, float64) {
	return in.mouseX, in.mouseY
}

// Scroll adds wheel movement for the current frame.
func (in *Input) Scroll(delta float64) {
	in.wheel += delta
}

// Wheel returns the wheel movement accumulated this frame.
func (in *Input) Wheel() float64 {
	return in.wheel
}

// EndFrame clears per-frame edges and advances the hold clock by dt.
// Keys whose hold window expired are reported released next frame.
func (in *Input) EndFrame(dt time.Duration) {
	in.clock += dt
	in.wheel = 0
	for b := range in.mouse {
		in.mouse[b].pressed = false
		in.mouse[b].released = false
	}
	for _, st := range in.keys {
		st.pressed = false
		st.released = false
		if st.down && in.clock-st.seen > in.hold {
			st.down = false
			st.released = true
		}
	}
}
