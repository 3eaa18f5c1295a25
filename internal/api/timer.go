package api

import (
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

func timerNamespace(st *engine.State) script.Namespace {
	t := st.Timer
	return script.Namespace{
		Name: "timer",
		Funcs: map[string]script.Func{
			"getDelta": func(script.Args) (any, error) { return t.Delta(), nil },
			"getFPS":   func(script.Args) (any, error) { return t.FPS(), nil },
			"getTime":  func(script.Args) (any, error) { return t.Time(), nil },
		},
	}
}
