package api

import (
	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/script"
)

func cameraNamespace(st *engine.State) script.Namespace {
	cam := st.Canvas.Camera()
	set := func(fn func(float64)) script.Func {
		return func(a script.Args) (any, error) {
			v, err := a.Number(0)
			if err != nil {
				return nil, err
			}
			fn(v)
			return nil, nil
		}
	}
	get := func(fn func() float64) script.Func {
		return func(script.Args) (any, error) {
			return fn(), nil
		}
	}
	return script.Namespace{
		Name: "camera",
		Funcs: map[string]script.Func{
			"attach": func(script.Args) (any, error) {
				cam.Attach()
				return nil, nil
			},
			"detach": func(script.Args) (any, error) {
				cam.Detach()
				return nil, nil
			},
			"lookAt": func(a script.Args) (any, error) {
				v, err := numbers(a, 0, 2)
				if err != nil {
					return nil, err
				}
				cam.LookAt(v[0], v[1])
				return nil, nil
			},
			"zoom":   set(func(v float64) { cam.Zoom = v }),
			"rotate": set(func(v float64) { cam.Rotation = v }),
			"toWorldX": func(a script.Args) (any, error) {
				x, err := a.Number(0)
				if err != nil {
					return nil, err
				}
				return cam.ToWorld(core.Point{X: x}).X, nil
			},
			"toWorldY": func(a script.Args) (any, error) {
				y, err := a.Number(0)
				if err != nil {
					return nil, err
				}
				return cam.ToWorld(core.Point{Y: y}).Y, nil
			},
			"getX":        get(func() float64 { return cam.Target.X }),
			"getY":        get(func() float64 { return cam.Target.Y }),
			"getZoom":     get(func() float64 { return cam.Zoom }),
			"getRotation": get(func() float64 { return cam.Rotation }),
		},
	}
}
