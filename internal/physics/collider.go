package physics

// DefaultClass is the collision class of a new collider.
const DefaultClass = "none"

// Collider is a body registered with a space, tagged with a class name.
// It is the native object behind a collider handle.
type Collider struct {
	Body  *Body
	Class string
}

// NewCircleCollider adds a circle body centered at (x, y) to s.
func NewCircleCollider(s *Space, x, y, radius float64) *Collider {
	b := NewBody(V(x, y), Circle{Radius: radius})
	s.AddBody(b)
	return &Collider{Body: b, Class: DefaultClass}
}

// NewBoxCollider adds a box body centered at (x, y) to s.
func NewBoxCollider(s *Space, x, y, w, h float64) *Collider {
	b := NewBody(V(x, y), Box{W: w, H: h})
	s.AddBody(b)
	return &Collider{Body: b, Class: DefaultClass}
}

// Release removes the body from its space.
func (c *Collider) Release() error {
	if sp := c.Body.Space(); sp != nil {
		sp.RemoveBody(c.Body)
	}
	return nil
}
