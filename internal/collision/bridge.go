// Package collision turns physics contact callbacks into per-frame pairs of
// collider handles that scripts can query.
package collision

import (
	"github.com/vovakirdan/turtle/internal/physics"
	"github.com/vovakirdan/turtle/internal/registry"
)

// Record is an unordered pair of colliding handles observed during the last
// physics step. Either side is empty when its body had no live handle.
type Record struct {
	A, B registry.Handle
}

// Bridge keeps the collision log for the current frame.
type Bridge struct {
	reg     *registry.Registry
	records []Record
}

// New creates a bridge and subscribes it to the space's post-solve
// notification.
func New(reg *registry.Registry, space *physics.Space) *Bridge {
	b := &Bridge{reg: reg}
	space.SetPostSolve(b.record)
	return b
}

// record resolves both bodies to handles by scanning the live colliders.
func (b *Bridge) record(a, c *physics.Body) {
	var r Record
	b.reg.Each(registry.KindCollider, func(h registry.Handle, n registry.Native) {
		col, ok := n.(*physics.Collider)
		if !ok {
			return
		}
		switch col.Body {
		case a:
			r.A = h
		case c:
			r.B = h
		}
	})
	b.records = append(b.records, r)
}

// IsColliding reports whether a and b were recorded as a pair this frame,
// in either order. Empty handles never match.
func (b *Bridge) IsColliding(x, y registry.Handle) bool {
	if x == "" || y == "" {
		return false
	}
	for _, r := range b.records {
		if (r.A == x && r.B == y) || (r.A == y && r.B == x) {
			return true
		}
	}
	return false
}

// Records returns a copy of this frame's log.
func (b *Bridge) Records() []Record {
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len returns the number of records this frame.
func (b *Bridge) Len() int {
	return len(b.records)
}

// Clear empties the log. The frame loop calls it at the end of every tick.
func (b *Bridge) Clear() {
	b.records = b.records[:0]
}
