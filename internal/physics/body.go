package physics

import (
	"errors"
	"fmt"
)

// BodyType controls how a body takes part in the simulation.
type BodyType int

const (
	// Dynamic bodies fall under gravity and respond to contacts.
	Dynamic BodyType = iota
	// Static bodies never move.
	Static
	// Kinematic bodies move by their velocity but ignore contacts.
	Kinematic
)

// String returns the name scripts use for the type.
func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// ErrBodyType is returned for an unrecognised body type name.
var ErrBodyType = errors.New("physics: unknown body type")

// ParseBodyType parses "dynamic", "static" or "kinematic".
func ParseBodyType(s string) (BodyType, error) {
	switch s {
	case "dynamic":
		return Dynamic, nil
	case "static":
		return Static, nil
	case "kinematic":
		return Kinematic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBodyType, s)
}

// Shape is the collision geometry of a body, centered on its position.
type Shape interface {
	bounds(pos Vec) (min, max Vec)
}

// Circle is a circle of the given radius.
type Circle struct {
	Radius float64
}

func (c Circle) bounds(pos Vec) (Vec, Vec) {
	r := V(c.Radius, c.Radius)
	return pos.Sub(r), pos.Add(r)
}

// Box is an axis-aligned box of the given size.
type Box struct {
	W, H float64
}

func (b Box) bounds(pos Vec) (Vec, Vec) {
	h := V(b.W/2, b.H/2)
	return pos.Sub(h), pos.Add(h)
}

// Body is a rigid body with one shape.
type Body struct {
	Type       BodyType
	Pos        Vec
	Vel        Vec
	Friction   float64
	Elasticity float64
	Shape      Shape

	mass  float64
	space *Space
}

// NewBody creates a dynamic body of mass 1 at pos.
func NewBody(pos Vec, shape Shape) *Body {
	return &Body{
		Type:  Dynamic,
		Pos:   pos,
		Shape: shape,
		mass:  1,
	}
}

// Mass returns the body's mass.
func (b *Body) Mass() float64 {
	return b.mass
}

// ErrMass is returned for a non-positive mass.
var ErrMass = errors.New("physics: mass must be positive")

// SetMass sets the body's mass.
func (b *Body) SetMass(m float64) error {
	if m <= 0 {
		return fmt.Errorf("%w: %v", ErrMass, m)
	}
	b.mass = m
	return nil
}

// invMass is zero for anything that contacts cannot push.
func (b *Body) invMass() float64 {
	if b.Type != Dynamic {
		return 0
	}
	return 1 / b.mass
}

// Space returns the space the body belongs to, or nil.
func (b *Body) Space() *Space {
	return b.space
}
