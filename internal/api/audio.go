package api

import (
	"github.com/vovakirdan/turtle/internal/audio"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/registry"
	"github.com/vovakirdan/turtle/internal/script"
)

func audioNamespace(st *engine.State) script.Namespace {
	sound := func(a script.Args) (*audio.Sound, error) {
		h, err := handleArg(a, 0)
		if err != nil {
			return nil, err
		}
		return registry.Get[*audio.Sound](st.Registry, h, registry.KindSound)
	}
	// action wraps a call that takes only the sound handle.
	action := func(fn func(*audio.Sound)) script.Func {
		return func(a script.Args) (any, error) {
			s, err := sound(a)
			if err != nil {
				return nil, err
			}
			fn(s)
			return nil, nil
		}
	}
	// setter wraps a call that takes the sound handle and a number.
	setter := func(fn func(*audio.Sound, float64)) script.Func {
		return func(a script.Args) (any, error) {
			s, err := sound(a)
			if err != nil {
				return nil, err
			}
			v, err := a.Number(1)
			if err != nil {
				return nil, err
			}
			fn(s, v)
			return nil, nil
		}
	}

	return script.Namespace{
		Name: "audio",
		Funcs: map[string]script.Func{
			"newSource": func(a script.Args) (any, error) {
				name, err := a.String(0)
				if err != nil {
					return nil, err
				}
				p, err := path(st, name)
				if err != nil {
					return nil, err
				}
				s, err := st.Audio.Load(p)
				if err != nil {
					return nil, err
				}
				return string(st.Registry.Create(registry.KindSound, s)), nil
			},
			"setMasterVolume": func(a script.Args) (any, error) {
				v, err := a.Number(0)
				if err != nil {
					return nil, err
				}
				st.Audio.SetMasterVolume(v)
				return nil, nil
			},
			"getMasterVolume": func(script.Args) (any, error) {
				return st.Audio.MasterVolume(), nil
			},
			"play":      action((*audio.Sound).Play),
			"stop":      action((*audio.Sound).Stop),
			"pause":     action((*audio.Sound).Pause),
			"resume":    action((*audio.Sound).Resume),
			"setVolume": setter((*audio.Sound).SetVolume),
			"setPitch":  setter((*audio.Sound).SetPitch),
			"isPlaying": func(a script.Args) (any, error) {
				s, err := sound(a)
				if err != nil {
					return nil, err
				}
				return s.IsPlaying(), nil
			},
			"getPosition": func(a script.Args) (any, error) {
				s, err := sound(a)
				if err != nil {
					return nil, err
				}
				return s.Position().Seconds(), nil
			},
			"getLength": func(a script.Args) (any, error) {
				s, err := sound(a)
				if err != nil {
					return nil, err
				}
				return s.Length().Seconds(), nil
			},
		},
	}
}
