package physics

import "math"

// contact describes an overlap between two bodies.
// Normal points from A to B.
type contact struct {
	a, b   *Body
	normal Vec
	depth  float64
}

func overlaps(a, b *Body) bool {
	amin, amax := a.Shape.bounds(a.Pos)
	bmin, bmax := b.Shape.bounds(b.Pos)
	return amin.X < bmax.X && bmin.X < amax.X && amin.Y < bmax.Y && bmin.Y < amax.Y
}

// collide returns the contact between a and b, if any.
func collide(a, b *Body) (contact, bool) {
	if !overlaps(a, b) {
		return contact{}, false
	}
	switch sa := a.Shape.(type) {
	case Circle:
		switch sb := b.Shape.(type) {
		case Circle:
			return circleCircle(a, b, sa, sb)
		case Box:
			return circleBox(a, b, sa, sb)
		}
	case Box:
		switch sb := b.Shape.(type) {
		case Circle:
			c, ok := circleBox(b, a, sb, sa)
			if ok {
				c.a, c.b = a, b
				c.normal = c.normal.Scale(-1)
			}
			return c, ok
		case Box:
			return boxBox(a, b, sa, sb)
		}
	}
	return contact{}, false
}

func circleCircle(a, b *Body, ca, cb Circle) (contact, bool) {
	d := b.Pos.Sub(a.Pos)
	dist := d.Len()
	r := ca.Radius + cb.Radius
	if dist >= r {
		return contact{}, false
	}
	n := d.Normalize()
	if dist == 0 {
		n = V(0, 1)
	}
	return contact{a: a, b: b, normal: n, depth: r - dist}, true
}

func boxBox(a, b *Body, ba, bb Box) (contact, bool) {
	d := b.Pos.Sub(a.Pos)
	ox := (ba.W+bb.W)/2 - math.Abs(d.X)
	oy := (ba.H+bb.H)/2 - math.Abs(d.Y)
	if ox <= 0 || oy <= 0 {
		return contact{}, false
	}
	if ox < oy {
		return contact{a: a, b: b, normal: V(sign(d.X), 0), depth: ox}, true
	}
	return contact{a: a, b: b, normal: V(0, sign(d.Y)), depth: oy}, true
}

// circleBox collides circle body a against box body b.
func circleBox(a, b *Body, c Circle, box Box) (contact, bool) {
	half := V(box.W/2, box.H/2)
	rel := a.Pos.Sub(b.Pos)
	closest := V(clamp(rel.X, -half.X, half.X), clamp(rel.Y, -half.Y, half.Y))

	if closest == rel {
		// Circle center inside the box: push out along the shallow axis.
		ox := half.X - math.Abs(rel.X)
		oy := half.Y - math.Abs(rel.Y)
		if ox < oy {
			return contact{a: a, b: b, normal: V(-sign(rel.X), 0), depth: ox + c.Radius}, true
		}
		return contact{a: a, b: b, normal: V(0, -sign(rel.Y)), depth: oy + c.Radius}, true
	}

	d := rel.Sub(closest)
	dist := d.Len()
	if dist >= c.Radius {
		return contact{}, false
	}
	// Normal from circle (A) toward box (B).
	return contact{a: a, b: b, normal: d.Scale(-1 / dist), depth: c.Radius - dist}, true
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

const (
	correctionPercent = 0.8
	correctionSlop    = 0.01
)

// resolve applies normal and friction impulses for one contact.
func (c contact) resolve() {
	ia, ib := c.a.invMass(), c.b.invMass()
	sum := ia + ib
	if sum == 0 {
		return
	}

	rv := c.b.Vel.Sub(c.a.Vel)
	vn := rv.Dot(c.normal)
	if vn > 0 {
		return
	}

	e := math.Min(c.a.Elasticity, c.b.Elasticity)
	j := -(1 + e) * vn / sum
	impulse := c.normal.Scale(j)
	c.a.Vel = c.a.Vel.Sub(impulse.Scale(ia))
	c.b.Vel = c.b.Vel.Add(impulse.Scale(ib))

	rv = c.b.Vel.Sub(c.a.Vel)
	tangent := rv.Sub(c.normal.Scale(rv.Dot(c.normal))).Normalize()
	if tangent == (Vec{}) {
		return
	}
	jt := -rv.Dot(tangent) / sum
	mu := c.a.Friction * c.b.Friction
	jt = clamp(jt, -j*mu, j*mu)
	friction := tangent.Scale(jt)
	c.a.Vel = c.a.Vel.Sub(friction.Scale(ia))
	c.b.Vel = c.b.Vel.Add(friction.Scale(ib))
}

// correct pushes overlapping bodies apart to stop sinking.
func (c contact) correct() {
	ia, ib := c.a.invMass(), c.b.invMass()
	sum := ia + ib
	if sum == 0 {
		return
	}
	amount := math.Max(c.depth-correctionSlop, 0) / sum * correctionPercent
	shift := c.normal.Scale(amount)
	c.a.Pos = c.a.Pos.Sub(shift.Scale(ia))
	c.b.Pos = c.b.Pos.Add(shift.Scale(ib))
}
