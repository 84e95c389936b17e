package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// ErrUnknownEntity is returned for handles not in the scene
var ErrUnknownEntity = errors.New("unknown entity")

// Scene registers entities and keeps the display in sync with them
type Scene struct {
	kernel   kernel.Kernel
	display  viewer.Display
	entities map[viewer.Handle]*Entity
	nextSeq  int
}

// New creates an empty scene
func New(k kernel.Kernel, display viewer.Display) *Scene {
	return &Scene{
		kernel:   k,
		display:  display,
		entities: make(map[viewer.Handle]*Entity),
	}
}

// Kernel returns the kernel shapes are built with
func (s *Scene) Kernel() kernel.Kernel {
	return s.kernel
}

// Add assigns a handle to e when it has none, registers and displays it
func (s *Scene) Add(e *Entity) *Entity {
	if e.Handle == (viewer.Handle{}) {
		e.Handle = viewer.NewHandle()
	}
	s.nextSeq++
	e.seq = s.nextSeq
	s.entities[e.Handle] = e
	s.display.Show(e.Handle, e.Shape, e.Style)
	return e
}

// Get returns the entity behind h
func (s *Scene) Get(h viewer.Handle) (*Entity, bool) {
	e, ok := s.entities[h]
	return e, ok
}

// Remove erases and unregisters an entity
func (s *Scene) Remove(h viewer.Handle) bool {
	if _, ok := s.entities[h]; !ok {
		return false
	}
	delete(s.entities, h)
	s.display.Erase(h)
	return true
}

// Replace swaps the entity behind old for e, which takes a new creation
// order slot
func (s *Scene) Replace(old viewer.Handle, e *Entity) *Entity {
	s.Remove(old)
	return s.Add(e)
}

// SetStyle redisplays an entity with another style
func (s *Scene) SetStyle(h viewer.Handle, style viewer.Style) error {
	e, ok := s.entities[h]
	if !ok {
		return fmt.Errorf("set style: %w", ErrUnknownEntity)
	}
	e.Style = style
	s.display.Replace(h, e.Shape, style)
	return nil
}

// Highlight shows an entity in the highlight style without changing its own style
func (s *Scene) Highlight(h viewer.Handle, on bool) {
	e, ok := s.entities[h]
	if !ok {
		return
	}
	style := e.Style
	if on {
		style = viewer.StyleHighlight
	}
	s.display.Replace(h, e.Shape, style)
}

// SetTransform places an entity with t, rebuilding its displayed shape from
// Base. On kernel failure the entity is unchanged.
func (s *Scene) SetTransform(h viewer.Handle, t geometry.Transform) error {
	e, ok := s.entities[h]
	if !ok {
		return fmt.Errorf("set transform: %w", ErrUnknownEntity)
	}
	shape, err := s.kernel.Transform(e.Base, t)
	if err != nil {
		return fmt.Errorf("set transform: %w", err)
	}
	e.Transform = t
	e.Shape = shape
	s.display.Replace(h, shape, e.Style)
	return nil
}

// Entities returns all entities in creation order
func (s *Scene) Entities() []*Entity {
	out := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Curves returns the sketch curves in creation order
func (s *Scene) Curves() []*Entity {
	var out []*Entity
	for _, e := range s.Entities() {
		if e.Kind.IsCurve() {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recently created entity still present
func (s *Scene) Last() (*Entity, bool) {
	var last *Entity
	for _, e := range s.entities {
		if last == nil || e.seq > last.seq {
			last = e
		}
	}
	return last, last != nil
}

// Len returns the number of entities
func (s *Scene) Len() int {
	return len(s.entities)
}

// Count returns how many entities of kind k exist
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

