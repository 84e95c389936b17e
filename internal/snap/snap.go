// Package snap finds existing endpoints near the cursor and closes chains of
// lines into wires.
package snap

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

const (
	// DefaultTolerance is the snap radius in model units
	DefaultTolerance = 10.0
	// DefaultMatchTolerance decides whether two chain points coincide
	DefaultMatchTolerance = 1e-6
)

var (
	// ErrLoopNotConnected is returned when a chain has a gap
	ErrLoopNotConnected = errors.New("could not close loop")
	// ErrLoopTooShort is returned for chains of fewer than three segments
	ErrLoopTooShort = errors.New("loop needs at least three segments")
)

// Candidate is an existing endpoint close to a query point
type Candidate struct {
	Point    geometry.Vector3
	Source   viewer.Handle
	Distance float64
}

// Engine snaps against the curves of a scene
type Engine struct {
	scene          *scene.Scene
	tolerance      float64
	matchTolerance float64
	logger         *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithTolerance sets the snap radius
func WithTolerance(tol float64) Option {
	return func(e *Engine) { e.tolerance = tol }
}

// WithMatchTolerance sets the coincidence tolerance for chain points
func WithMatchTolerance(tol float64) Option {
	return func(e *Engine) { e.matchTolerance = tol }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates a snap engine over sc
func New(sc *scene.Scene, opts ...Option) *Engine {
	e := &Engine{
		scene:          sc,
		tolerance:      DefaultTolerance,
		matchTolerance: DefaultMatchTolerance,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tolerance returns the snap radius
func (e *Engine) Tolerance() float64 {
	return e.tolerance
}

// FindSnap returns the endpoint nearest to p within the snap radius.
// Equally distant endpoints resolve to the entity created first.
func (e *Engine) FindSnap(p geometry.Vector3) (Candidate, bool) {
	best := Candidate{Distance: math.MaxFloat64}
	found := false
	for _, ent := range e.scene.Curves() {
		for _, end := range ent.Endpoints() {
			d := end.Distance(p)
			if d > e.tolerance {
				continue
			}
			if !found || d < best.Distance-1e-12 {
				best = Candidate{Point: end, Source: ent.Handle, Distance: d}
				found = true
			}
		}
	}
	return best, found
}

// Snap returns the snapped position for p, or p itself
func (e *Engine) Snap(p geometry.Vector3) geometry.Vector3 {
	if c, ok := e.FindSnap(p); ok {
		return c.Point
	}
	return p
}

// CheckLoopClosure reports whether a segment ending at p closes loop. The
// loop must already hold two segments so that p adds the third.
func (e *Engine) CheckLoopClosure(p geometry.Vector3, loop *Loop) bool {
	if loop == nil || loop.Len() < 2 {
		return false
	}
	return p.Distance(loop.FirstPoint) <= e.tolerance
}

// CloseLoop replaces the loop's lines with a single closed wire. Nothing in
// the scene changes unless the wire was built.
func (e *Engine) CloseLoop(loop *Loop) (*scene.Entity, error) {
	k := e.scene.Kernel()

	var segs []Segment
	for _, h := range loop.Handles {
		ent, ok := e.scene.Get(h)
		if !ok {
			return nil, fmt.Errorf("%w: entity %s is gone", ErrLoopNotConnected, h)
		}
		ends := ent.Endpoints()
		if len(ends) != 2 {
			return nil, fmt.Errorf("%w: %s has no open ends", ErrLoopNotConnected, ent.Kind)
		}
		segs = append(segs, Segment{Start: ends[0], End: ends[1], Source: h})
	}

	chain, err := OrderSegments(segs, e.matchTolerance)
	if err != nil {
		e.logger.Debug("loop not connected", zap.Int("segments", len(segs)), zap.Error(err))
		return nil, err
	}
	chain = CloseChain(chain, e.matchTolerance)
	if len(chain) < 3 {
		return nil, ErrLoopTooShort
	}

	edges := make([]kernel.Shape, 0, len(chain))
	points := make([]geometry.Vector3, 0, len(chain)+1)
	for _, s := range chain {
		edge, err := k.BuildEdge(s.Start, s.End)
		if err != nil {
			return nil, fmt.Errorf("build loop edge: %w", err)
		}
		edges = append(edges, edge)
		points = append(points, s.Start)
	}
	points = append(points, chain[0].Start)

	wire, err := k.BuildWire(edges)
	if err != nil {
		return nil, fmt.Errorf("build loop wire: %w", err)
	}

	ent := scene.NewShape(scene.Wire, wire, viewer.StyleSketch)
	ent.Points = points
	e.scene.Add(ent)
	for _, s := range segs {
		e.scene.Remove(s.Source)
	}
	loop.Reset()

	e.logger.Debug("loop closed", zap.Int("segments", len(chain)), zap.Stringer("wire", ent.Handle))
	return ent, nil
}
