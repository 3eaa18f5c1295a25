package api

import (
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

func storageNamespace(st *engine.State) script.Namespace {
	return script.Namespace{
		Name: "storage",
		Funcs: map[string]script.Func{
			"set": func(a script.Args) (any, error) {
				key, err := a.String(0)
				if err != nil {
					return nil, err
				}
				value, err := a.String(1)
				if err != nil {
					return nil, err
				}
				return nil, st.Store.Set(st.GameID, key, value)
			},
			"get": func(a script.Args) (any, error) {
				key, err := a.String(0)
				if err != nil {
					return nil, err
				}
				value, ok, err := st.Store.Get(st.GameID, key)
				if err != nil || !ok {
					return nil, err
				}
				return value, nil
			},
			"remove": func(a script.Args) (any, error) {
				key, err := a.String(0)
				if err != nil {
					return nil, err
				}
				return nil, st.Store.Delete(st.GameID, key)
			},
			"keys": func(script.Args) (any, error) {
				return st.Store.Keys(st.GameID)
			},
		},
	}
}
