package physics

// PostSolveFunc is called once per contact after the contact is resolved.
type PostSolveFunc func(a, b *Body)

// Space holds bodies and advances them through time.
type Space struct {
	gravity    Vec
	bodies     []*Body
	postSolve  PostSolveFunc
	iterations int
}

// NewSpace creates a space with the given gravity.
func NewSpace(gravity Vec) *Space {
	return &Space{
		gravity:    gravity,
		iterations: 10,
	}
}

// SetIterations sets how many solver passes each step makes.
func (s *Space) SetIterations(n int) {
	if n > 0 {
		s.iterations = n
	}
}

// Gravity returns the gravity vector.
func (s *Space) Gravity() Vec {
	return s.gravity
}

// SetGravity replaces the gravity vector.
func (s *Space) SetGravity(g Vec) {
	s.gravity = g
}

// SetPostSolve installs the contact callback, replacing any previous one.
func (s *Space) SetPostSolve(fn PostSolveFunc) {
	s.postSolve = fn
}

// AddBody adds b to the space. Adding a body twice is a no-op.
func (s *Space) AddBody(b *Body) {
	if b.space == s {
		return
	}
	b.space = s
	s.bodies = append(s.bodies, b)
}

// RemoveBody removes b from the space. Removing an absent body is a no-op.
func (s *Space) RemoveBody(b *Body) {
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			b.space = nil
			return
		}
	}
}

// Len returns the number of bodies.
func (s *Space) Len() int {
	return len(s.bodies)
}

// Step advances the simulation by dt seconds: gravity, contact
// resolution, then position integration. Non-positive dt is ignored.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range s.bodies {
		if b.Type == Dynamic {
			b.Vel = b.Vel.Add(s.gravity.Scale(dt))
		}
	}

	contacts := s.contacts()
	for i := 0; i < s.iterations; i++ {
		for _, c := range contacts {
			c.resolve()
		}
	}

	for _, b := range s.bodies {
		if b.Type != Static {
			b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		}
	}

	for _, c := range contacts {
		c.correct()
	}

	if s.postSolve != nil {
		for _, c := range contacts {
			s.postSolve(c.a, c.b)
		}
	}
}

// contacts finds every overlapping pair that involves a dynamic body.
func (s *Space) contacts() []contact {
	var out []contact
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := s.bodies[i], s.bodies[j]
			if a.Type != Dynamic && b.Type != Dynamic {
				continue
			}
			if c, ok := collide(a, b); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// Close removes every body.
func (s *Space) Close() error {
	for _, b := range s.bodies {
		b.space = nil
	}
	s.bodies = nil
	s.postSolve = nil
	return nil
}
