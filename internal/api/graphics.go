package api

import (
	"fmt"
	"os"

	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/graphics"
	"github.com/vovakirdan/turtle/internal/registry"
	"github.com/vovakirdan/turtle/internal/script"
)

func graphicsNamespace(st *engine.State) script.Namespace {
	cv := st.Canvas

	// shape reads a mode and n numbers; an unknown mode draws nothing.
	shape := func(a script.Args, n int, draw func(graphics.Mode, []float64)) (any, error) {
		name, err := a.String(0)
		if err != nil {
			return nil, err
		}
		v, err := numbers(a, 1, n)
		if err != nil {
			return nil, err
		}
		if mode, ok := graphics.ParseMode(name); ok {
			draw(mode, v)
		}
		return nil, nil
	}

	return script.Namespace{
		Name: "graphics",
		Funcs: map[string]script.Func{
			"print": func(a script.Args) (any, error) {
				text, err := a.String(0)
				if err != nil {
					return nil, err
				}
				v, err := numbers(a, 1, 2)
				if err != nil {
					return nil, err
				}
				size, err := a.OptNumber(3, 20)
				if err != nil {
					return nil, err
				}
				cv.Print(text, v[0], v[1], size)
				return nil, nil
			},
			"circle": func(a script.Args) (any, error) {
				return shape(a, 3, func(m graphics.Mode, v []float64) {
					cv.Circle(m, v[0], v[1], v[2])
				})
			},
			"ellipse": func(a script.Args) (any, error) {
				return shape(a, 4, func(m graphics.Mode, v []float64) {
					cv.Ellipse(m, v[0], v[1], v[2], v[3])
				})
			},
			"rectangle": func(a script.Args) (any, error) {
				return shape(a, 4, func(m graphics.Mode, v []float64) {
					cv.Rectangle(m, v[0], v[1], v[2], v[3])
				})
			},
			"triangle": func(a script.Args) (any, error) {
				return shape(a, 6, func(m graphics.Mode, v []float64) {
					cv.Triangle(m,
						core.Point{X: v[0], Y: v[1]},
						core.Point{X: v[2], Y: v[3]},
						core.Point{X: v[4], Y: v[5]})
				})
			},
			"line": func(a script.Args) (any, error) {
				v, err := numbers(a, 0, 4)
				if err != nil {
					return nil, err
				}
				cv.Line(v[0], v[1], v[2], v[3])
				return nil, nil
			},
			"point": func(a script.Args) (any, error) {
				v, err := numbers(a, 0, 2)
				if err != nil {
					return nil, err
				}
				cv.Point(v[0], v[1])
				return nil, nil
			},
			"draw": func(a script.Args) (any, error) {
				h, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				v, err := numbers(a, 1, 2)
				if err != nil {
					return nil, err
				}
				rotation, err := a.OptNumber(3, 0)
				if err != nil {
					return nil, err
				}
				scale, err := a.OptNumber(4, 1)
				if err != nil {
					return nil, err
				}
				img, err := registry.Get[*graphics.Image](st.Registry, h, registry.KindImage)
				if err != nil {
					return nil, err
				}
				cv.DrawImage(img, v[0], v[1], rotation, scale)
				return nil, nil
			},
			"newImage": func(a script.Args) (any, error) {
				name, err := a.String(0)
				if err != nil {
					return nil, err
				}
				p, err := path(st, name)
				if err != nil {
					return nil, err
				}
				img, err := graphics.LoadImage(p)
				if err != nil {
					return nil, err
				}
				return string(st.Registry.Create(registry.KindImage, img)), nil
			},
			"newFont": func(a script.Args) (any, error) {
				name, err := a.String(0)
				if err != nil {
					return nil, err
				}
				p, err := path(st, name)
				if err != nil {
					return nil, err
				}
				font, err := graphics.LoadFont(p)
				if err != nil {
					return nil, err
				}
				return string(st.Registry.Create(registry.KindFont, font)), nil
			},
			"setFont": func(a script.Args) (any, error) {
				h, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				font, err := registry.Get[*graphics.Font](st.Registry, h, registry.KindFont)
				if err != nil {
					return nil, err
				}
				cv.SetFont(font)
				return nil, nil
			},
			"captureScreenshot": func(a script.Args) (any, error) {
				name, err := a.String(0)
				if err != nil {
					return nil, err
				}
				p, err := path(st, name)
				if err != nil {
					return nil, err
				}
				if err := os.WriteFile(p, []byte(cv.Screenshot()+"\n"), 0o644); err != nil {
					return nil, fmt.Errorf("screenshot: %w", err)
				}
				return nil, nil
			},
			"setColor": func(a script.Args) (any, error) {
				c, err := colorArgs(a, 0)
				if err != nil {
					return nil, err
				}
				cv.SetColor(c)
				return nil, nil
			},
			"setBackgroundColor": func(a script.Args) (any, error) {
				c, err := colorArgs(a, 0)
				if err != nil {
					return nil, err
				}
				cv.SetBackground(c)
				return nil, nil
			},
			"getWidth": func(script.Args) (any, error) {
				return cv.Width(), nil
			},
			"getHeight": func(script.Args) (any, error) {
				return cv.Height(), nil
			},
		},
	}
}
