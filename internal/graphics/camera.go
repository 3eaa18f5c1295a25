package graphics

import "github.com/vovakirdan/turtle/internal/core"

// Camera is a 2D view transform: world points are translated by -Target,
// rotated by Rotation degrees and scaled by Zoom. Shapes drawn while the
// camera is attached are placed through it.
type Camera struct {
	Target   core.Point
	Zoom     float64
	Rotation float64

	attached bool
}

// NewCamera returns an identity camera.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// Attach routes subsequent drawing through the camera.
func (c *Camera) Attach() { c.attached = true }

// Detach returns to screen-space drawing.
func (c *Camera) Detach() { c.attached = false }

// Attached reports whether drawing goes through the camera.
func (c *Camera) Attached() bool { return c.attached }

// LookAt moves the camera target.
func (c *Camera) LookAt(x, y float64) {
	c.Target = core.Point{X: x, Y: y}
}

func (c *Camera) zoom() float64 {
	if c.Zoom == 0 {
		return 1
	}
	return c.Zoom
}

// ToScreen maps a world point to screen space.
func (c *Camera) ToScreen(p core.Point) core.Point {
	rel := core.Point{X: p.X - c.Target.X, Y: p.Y - c.Target.Y}.Rotate(c.Rotation)
	z := c.zoom()
	return core.Point{X: rel.X * z, Y: rel.Y * z}
}

// ToWorld maps a screen point to world space.
func (c *Camera) ToWorld(p core.Point) core.Point {
	z := c.zoom()
	rel := core.Point{X: p.X / z, Y: p.Y / z}.Rotate(-c.Rotation)
	return core.Point{X: rel.X + c.Target.X, Y: rel.Y + c.Target.Y}
}

// Reset restores the identity transform and detaches.
func (c *Camera) Reset() {
	*c = Camera{Zoom: 1}
}
