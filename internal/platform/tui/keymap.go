package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turtle/internal/core"
)

// KeyMap holds the bindings the runtime keeps for itself. Every other key
// goes to the game.
type KeyMap struct {
	Quit key.Binding
	// Dismiss closes the error screen.
	Dismiss key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Dismiss}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.Dismiss}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "close error screen"),
		),
	}
}

// namedKeys maps Bubble Tea key names to the names scripts query.
var namedKeys = map[string]string{
	" ":         "space",
	"space":     "space",
	"enter":     "return",
	"esc":       "escape",
	"backspace": "backspace",
	"tab":       "tab",
	"delete":    "delete",
	"insert":    "insert",
	"home":      "home",
	"end":       "end",
	"pgup":      "pageup",
	"pgdown":    "pagedown",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
}

// modifiers maps key prefixes to the modifier key they imply. Terminals
// only report the left-hand variants.
var modifiers = []struct {
	prefix string
	name   string
}{
	{"ctrl+", "lctrl"},
	{"alt+", "lalt"},
	{"shift+", "lshift"},
}

// KeyNames translates a key message to the script key names it presses:
// the key itself followed by any modifiers. Unknown keys yield nil.
func KeyNames(msg tea.KeyMsg) []string {
	s := msg.String()
	var mods []string
	for changed := true; changed; {
		changed = false
		for _, m := range modifiers {
			if len(s) > len(m.prefix) && strings.HasPrefix(s, m.prefix) {
				s = strings.TrimPrefix(s, m.prefix)
				mods = append(mods, m.name)
				changed = true
			}
		}
	}

	name, ok := keyName(s)
	if !ok {
		return nil
	}
	// Upper-case letters arrive without a shift+ prefix.
	if r := []rune(s); len(r) == 1 && r[0] >= 'A' && r[0] <= 'Z' {
		mods = append(mods, "lshift")
	}
	return append([]string{name}, mods...)
}

func keyName(s string) (string, bool) {
	if n, ok := namedKeys[s]; ok {
		return n, true
	}
	lower := strings.ToLower(s)
	if core.IsKey(lower) {
		return lower, true
	}
	return "", false
}

// MouseButton maps a Bubble Tea mouse button to a script button number.
func MouseButton(b tea.MouseButton) (int, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return core.MouseLeft, true
	case tea.MouseButtonRight:
		return core.MouseRight, true
	case tea.MouseButtonMiddle:
		return core.MouseMiddle, true
	}
	return 0, false
}
