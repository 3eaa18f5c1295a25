package api

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

var (
	// ErrKey is returned for a key name the runtime does not know.
	ErrKey = errors.New("unknown key")
	// ErrButton is returned for a mouse button other than 0, 1 or 2.
	ErrButton = errors.New("unknown mouse button")
)

func keyboardNamespace(st *engine.State) script.Namespace {
	query := func(fn func(string) bool) script.Func {
		return func(a script.Args) (any, error) {
			name, err := a.String(0)
			if err != nil {
				return nil, err
			}
			if !core.IsKey(name) {
				return nil, fmt.Errorf("%w: %q", ErrKey, name)
			}
			return fn(name), nil
		}
	}
	in := st.Input
	return script.Namespace{
		Name: "keyboard",
		Funcs: map[string]script.Func{
			"isDown":     query(in.KeyDown),
			"isPressed":  query(in.KeyPressed),
			"isReleased": query(in.KeyReleased),
		},
	}
}

func mouseNamespace(st *engine.State) script.Namespace {
	query := func(fn func(int) bool) script.Func {
		return func(a script.Args) (any, error) {
			b, err := a.Int(0)
			if err != nil {
				return nil, err
			}
			if b < core.MouseLeft || b > core.MouseMiddle {
				return nil, fmt.Errorf("%w: %d", ErrButton, b)
			}
			return fn(b), nil
		}
	}
	flag := func(set func(bool)) script.Func {
		return func(a script.Args) (any, error) {
			on, err := a.Bool(0)
			if err != nil {
				return nil, err
			}
			set(on)
			return nil, nil
		}
	}
	in, win := st.Input, st.Window
	return script.Namespace{
		Name: "mouse",
		Funcs: map[string]script.Func{
			"isDown":     query(in.MouseDown),
			"isPressed":  query(in.MousePressed),
			"isReleased": query(in.MouseReleased),
			"getX": func(script.Args) (any, error) {
				x, _ := in.MousePosition()
				return x, nil
			},
			"getY": func(script.Args) (any, error) {
				_, y := in.MousePosition()
				return y, nil
			},
			"getWheelMove": func(script.Args) (any, error) {
				return in.Wheel(), nil
			},
			"setGrabbed": flag(win.SetCursorGrabbed),
			"isGrabbed": func(script.Args) (any, error) {
				return win.CursorGrabbed(), nil
			},
			"setVisible": flag(win.SetCursorVisible),
			"isVisible": func(script.Args) (any, error) {
				return win.CursorVisible(), nil
			},
		},
	}
}
