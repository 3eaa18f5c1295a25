package api

import (
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/physics"
	"github.com/vovakirdan/turtle/internal/registry"
	"github.com/vovakirdan/turtle/internal/script"
)

func physicsNamespace(st *engine.State) script.Namespace {
	collider := func(a script.Args) (*physics.Collider, error) {
		h, err := handleArg(a, 0)
		if err != nil {
			return nil, err
		}
		return registry.Get[*physics.Collider](st.Registry, h, registry.KindCollider)
	}
	getter := func(fn func(*physics.Collider) any) script.Func {
		return func(a script.Args) (any, error) {
			c, err := collider(a)
			if err != nil {
				return nil, err
			}
			return fn(c), nil
		}
	}
	setter := func(fn func(*physics.Collider, float64) error) script.Func {
		return func(a script.Args) (any, error) {
			c, err := collider(a)
			if err != nil {
				return nil, err
			}
			v, err := a.Number(1)
			if err != nil {
				return nil, err
			}
			return nil, fn(c, v)
		}
	}

	return script.Namespace{
		Name: "physics",
		Funcs: map[string]script.Func{
			"newCircleCollider": func(a script.Args) (any, error) {
				v, err := numbers(a, 0, 3)
				if err != nil {
					return nil, err
				}
				c := physics.NewCircleCollider(st.Space, v[0], v[1], v[2])
				return string(st.Registry.Create(registry.KindCollider, c)), nil
			},
			"newRectangleCollider": func(a script.Args) (any, error) {
				v, err := numbers(a, 0, 4)
				if err != nil {
					return nil, err
				}
				c := physics.NewBoxCollider(st.Space, v[0], v[1], v[2], v[3])
				return string(st.Registry.Create(registry.KindCollider, c)), nil
			},
			"destroy": func(a script.Args) (any, error) {
				h, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				if _, err := st.Registry.Lookup(h, registry.KindCollider); err != nil {
					return nil, err
				}
				res, _ := st.Registry.Remove(h)
				return nil, res.Native.Release()
			},
			"getX":              getter(func(c *physics.Collider) any { return c.Body.Pos.X }),
			"getY":              getter(func(c *physics.Collider) any { return c.Body.Pos.Y }),
			"getVelocityX":      getter(func(c *physics.Collider) any { return c.Body.Vel.X }),
			"getVelocityY":      getter(func(c *physics.Collider) any { return c.Body.Vel.Y }),
			"getType":           getter(func(c *physics.Collider) any { return c.Body.Type.String() }),
			"getMass":           getter(func(c *physics.Collider) any { return c.Body.Mass() }),
			"getFriction":       getter(func(c *physics.Collider) any { return c.Body.Friction }),
			"getElasticity":     getter(func(c *physics.Collider) any { return c.Body.Elasticity }),
			"getCollisionClass": getter(func(c *physics.Collider) any { return c.Class }),
			"setX": setter(func(c *physics.Collider, v float64) error {
				c.Body.Pos.X = v
				return nil
			}),
			"setY": setter(func(c *physics.Collider, v float64) error {
				c.Body.Pos.Y = v
				return nil
			}),
			"setMass": setter(func(c *physics.Collider, v float64) error {
				return c.Body.SetMass(v)
			}),
			"setFriction": setter(func(c *physics.Collider, v float64) error {
				c.Body.Friction = v
				return nil
			}),
			"setElasticity": setter(func(c *physics.Collider, v float64) error {
				c.Body.Elasticity = v
				return nil
			}),
			"setType": func(a script.Args) (any, error) {
				c, err := collider(a)
				if err != nil {
					return nil, err
				}
				name, err := a.String(1)
				if err != nil {
					return nil, err
				}
				t, err := physics.ParseBodyType(name)
				if err != nil {
					return nil, err
				}
				c.Body.Type = t
				if t == physics.Static {
					c.Body.Vel = physics.Vec{}
				}
				return nil, nil
			},
			"setVelocity": func(a script.Args) (any, error) {
				c, err := collider(a)
				if err != nil {
					return nil, err
				}
				v, err := numbers(a, 1, 2)
				if err != nil {
					return nil, err
				}
				c.Body.Vel = physics.V(v[0], v[1])
				return nil, nil
			},
			"setCollisionClass": func(a script.Args) (any, error) {
				c, err := collider(a)
				if err != nil {
					return nil, err
				}
				class, err := a.String(1)
				if err != nil {
					return nil, err
				}
				c.Class = class
				return nil, nil
			},
			"isColliding": func(a script.Args) (any, error) {
				x, err := handleArg(a, 0)
				if err != nil {
					return nil, err
				}
				y, err := handleArg(a, 1)
				if err != nil {
					return nil, err
				}
				return st.Collisions.IsColliding(x, y), nil
			},
			"setGravity": func(a script.Args) (any, error) {
				v, err := numbers(a, 0, 2)
				if err != nil {
					return nil, err
				}
				st.Space.SetGravity(physics.V(v[0], v[1]))
				return nil, nil
			},
			"getGravity": func(script.Args) (any, error) {
				g := st.Space.Gravity()
				return map[string]any{"x": g.X, "y": g.Y}, nil
			},
		},
	}
}
