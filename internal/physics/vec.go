// Package physics is a small 2D rigid-body space: circles and axis-aligned
// boxes, gravity, impulse contact resolution with friction, and a
// post-solve callback for every contact.
//
// Bodies do not rotate. The space is stepped by the frame loop's single
// thread and does no locking.
package physics

import "math"

// Vec is a 2D vector.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{v.X * f, v.Y * f}
}

func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the vector magnitude.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Perp returns v rotated a quarter turn.
func (v Vec) Perp() Vec {
	return Vec{-v.Y, v.X}
}

// Normalize returns a unit vector, or zero for a zero vector.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}
