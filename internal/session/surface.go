package session

import (
	"errors"
	"fmt"
)

// ErrSurfaceNotFound indicates a surface id that does not resolve.
var ErrSurfaceNotFound = errors.New("session: surface not found")

// Surface is the drawing target a session is bound to.
type Surface interface {
	ID() string
	Size() (width, height int)
}

type namedSurface struct {
	id   string
	w, h int
}

// NewSurface returns a plain surface with a fixed size.
func NewSurface(id string, width, height int) Surface {
	return namedSurface{id: id, w: width, h: height}
}

func (s namedSurface) ID() string                { return s.id }
func (s namedSurface) Size() (width, height int) { return s.w, s.h }

// Registry resolves surface ids to surfaces.
type Registry struct {
	surfaces map[string]Surface
}

func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register adds s, replacing any surface with the same id.
func (r *Registry) Register(s Surface) { r.surfaces[s.ID()] = s }

// Resolve looks up id.
func (r *Registry) Resolve(id string) (Surface, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, id)
	}
	s, ok := r.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, id)
	}
	return s, nil
}
