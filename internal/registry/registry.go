// Package registry maps opaque handles to native resources.
//
// A handle is the only name a script has for a native object. Handles are
// random UUIDs, never reused; a freed handle simply stops resolving. The
// registry is owned by the frame loop's single thread and does no locking.
package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Handle is an opaque resource identifier.
type Handle string

// Kind tags the resource stored under a handle.
type Kind int

const (
	KindImage Kind = iota
	KindFont
	KindSound
	KindCollider
	KindHost
	KindPeer
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFont:
		return "font"
	case KindSound:
		return "sound"
	case KindCollider:
		return "collider"
	case KindHost:
		return "host"
	case KindPeer:
		return "peer"
	default:
		return "unknown"
	}
}

// Native is a native object owned by the registry.
// Release frees whatever the object holds outside the Go heap.
type Native interface {
	Release() error
}

// Resource is the tagged value stored under a handle.
type Resource struct {
	Kind   Kind
	Native Native
}

var (
	// ErrNotFound is returned when a handle does not resolve.
	ErrNotFound = errors.New("handle not found")
	// ErrKindMismatch is returned when a handle resolves to another kind.
	ErrKindMismatch = errors.New("handle kind mismatch")
)

// LookupError describes a failed lookup.
type LookupError struct {
	Handle Handle
	Want   Kind
	Got    Kind // valid only for ErrKindMismatch
	Err    error
}

func (e *LookupError) Error() string {
	if errors.Is(e.Err, ErrKindMismatch) {
		return fmt.Sprintf("registry: %s %q is a %s", e.Want, e.Handle, e.Got)
	}
	return fmt.Sprintf("registry: %s %q not found", e.Want, e.Handle)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Registry owns every live resource.
type Registry struct {
	items   map[Handle]Resource
	newUUID func() string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		items:   make(map[Handle]Resource),
		newUUID: uuid.NewString,
	}
}

// Create stores n under a fresh handle and returns the handle.
func (r *Registry) Create(kind Kind, n Native) Handle {
	h := Handle(r.newUUID())
	for {
		if _, live := r.items[h]; !live {
			break
		}
		h = Handle(r.newUUID())
	}
	r.items[h] = Resource{Kind: kind, Native: n}
	return h
}

// Lookup returns the native object stored under h, checking its kind.
func (r *Registry) Lookup(h Handle, kind Kind) (Native, error) {
	res, ok := r.items[h]
	if !ok {
		return nil, &LookupError{Handle: h, Want: kind, Err: ErrNotFound}
	}
	if res.Kind != kind {
		return nil, &LookupError{Handle: h, Want: kind, Got: res.Kind, Err: ErrKindMismatch}
	}
	return res.Native, nil
}

// Get looks up h and asserts the native object to T.
func Get[T Native](r *Registry, h Handle, kind Kind) (T, error) {
	var zero T
	n, err := r.Lookup(h, kind)
	if err != nil {
		return zero, err
	}
	v, ok := n.(T)
	if !ok {
		return zero, &LookupError{Handle: h, Want: kind, Got: kind, Err: ErrKindMismatch}
	}
	return v, nil
}

// Remove detaches the resource under h and hands it back to the caller,
// who becomes responsible for releasing it. Removing an absent handle is a
// no-op.
func (r *Registry) Remove(h Handle) (Resource, bool) {
	res, ok := r.items[h]
	if ok {
		delete(r.items, h)
	}
	return res, ok
}

// Each calls fn for every resource of the given kind.
// It is for in-process use only; fn must not add or remove handles.
func (r *Registry) Each(kind Kind, fn func(Handle, Native)) {
	for h, res := range r.items {
		if res.Kind == kind {
			fn(h, res.Native)
		}
	}
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	return len(r.items)
}

// Close releases every remaining resource and empties the registry.
func (r *Registry) Close() error {
	var errs []error
	for h, res := range r.items {
		if err := res.Native.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s %s: %w", res.Kind, h, err))
		}
		delete(r.items, h)
	}
	return errors.Join(errs...)
}
