package api

import (
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

func windowNamespace(st *engine.State) script.Namespace {
	w := st.Window
	value := func(fn func() any) script.Func {
		return func(script.Args) (any, error) {
			return fn(), nil
		}
	}
	action := func(fn func()) script.Func {
		return func(script.Args) (any, error) {
			fn()
			return nil, nil
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
	pair := func(set func(int, int)) script.Func {
		return func(a script.Args) (any, error) {
			x, err := a.Int(0)
			if err != nil {
				return nil, err
			}
			y, err := a.Int(1)
			if err != nil {
				return nil, err
			}
			set(x, y)
			return nil, nil
		}
	}

	return script.Namespace{
		Name: "window",
		Funcs: map[string]script.Func{
			"close": action(st.RequestClose),
			"getDisplayWidth": value(func() any {
				cols, _ := w.DisplaySize()
				return cols
			}),
			"getDisplayHeight": value(func() any {
				_, rows := w.DisplaySize()
				return rows
			}),
			"getWidth": value(func() any {
				width, _ := w.Size()
				return width
			}),
			"getHeight": value(func() any {
				_, height := w.Size()
				return height
			}),
			"getDisplayName": value(func() any { return "terminal" }),
			"getFullscreen":  value(func() any { return w.Fullscreen() }),
			"getX": value(func() any {
				x, _ := w.Position()
				return x
			}),
			"getY": value(func() any {
				_, y := w.Position()
				return y
			}),
			"getTitle":      value(func() any { return w.Title() }),
			"getVSync":      value(func() any { return w.VSync() }),
			"hasFocus":      value(func() any { return w.Focused() }),
			"isVisible":     value(func() any { return w.Visible() }),
			"isMaximized":   value(func() any { return w.Maximized() }),
			"isMinimized":   value(func() any { return w.Minimized() }),
			"isResized":     value(func() any { return w.Resized() }),
			"maximize":      action(w.Maximize),
			"minimize":      action(w.Minimize),
			"restore":       action(w.Restore),
			"setFullscreen": flag(w.SetFullscreen),
			"setVSync":      flag(w.SetVSync),
			"setResizable":  flag(w.SetResizable),
			"setPosition":   pair(w.SetPosition),
			"setMinSize":    pair(w.SetMinSize),
			"setTitle": func(a script.Args) (any, error) {
				title, err := a.String(0)
				if err != nil {
					return nil, err
				}
				w.SetTitle(title)
				return nil, nil
			},
		},
	}
}
