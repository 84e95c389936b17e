package session

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/internal/solver"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
	"go.uber.org/zap"
)

// lineSegment returns the placed segment of a line entity
func lineSegment(e *scene.Entity) (solver.Segment, bool) {
	if e.Kind != scene.Line {
		return solver.Segment{}, false
	}
	ends := e.Endpoints()
	if len(ends) != 2 {
		return solver.Segment{}, false
	}
	return solver.Segment{Start: ends[0], End: ends[1]}, true
}

// outline returns the displayed outline of e as straight pieces
func (c *Controller) outline(e *scene.Entity) []solver.Segment {
	var segs []solver.Segment
	for _, line := range c.kernel.Polylines(e.Shape) {
		for i := 0; i+1 < len(line); i++ {
			segs = append(segs, solver.Segment{Start: line[i], End: line[i+1]})
		}
	}
	return segs
}

// trimAt cuts the line under px at the crossing nearest to the pointer and
// removes the clicked piece
func (c *Controller) trimAt(px geometry.Pixel) {
	e, hit, ok := c.entityAt(px, kernel.PickEdge)
	if !ok {
		return
	}
	seg, ok := lineSegment(e)
	if !ok {
		c.logger.Debug("only lines can be trimmed", zap.Stringer("kind", e.Kind))
		return
	}

	var cutters []solver.Segment
	for _, other := range c.scene.Curves() {
		if other.Handle != e.Handle {
			cutters = append(cutters, c.outline(other)...)
		}
	}

	kept, err := solver.Trim(seg, cutters, seg.Param(hit.Point))
	if err != nil {
		c.logger.Debug("nothing to trim", zap.Stringer("line", e.Handle), zap.Error(err))
		return
	}
	edge, err := c.kernel.BuildEdge(kept.Start, kept.End)
	if err != nil {
		c.logger.Warn("trim failed", zap.Error(err))
		return
	}
	trimmed := c.scene.Replace(e.Handle, scene.NewLine(kept.Start, kept.End, edge))
	c.logger.Debug("line trimmed", zap.Stringer("line", trimmed.Handle))
}

// filletPick collects two lines and rounds their corner
func (c *Controller) filletPick(px geometry.Pixel) {
	e, _, ok := c.entityAt(px, kernel.PickEdge)
	if !ok || e.Kind != scene.Line {
		return
	}
	if !c.pair.set {
		c.selectFirst(e)
		c.hint = "click the second line"
		return
	}
	if e.Handle == c.pair.first {
		return
	}

	first, ok := c.scene.Get(c.pair.first)
	c.clearPair()
	c.hint = Fillet.hint()
	if !ok {
		return
	}
	if _, err := c.fillet(first, e); err != nil {
		c.logger.Warn("fillet failed", zap.Float64("radius", c.settings.FilletRadius), zap.Error(err))
	}
}

// fillet replaces lines a and b with one wire running along the trimmed
// first line, the arc and the trimmed second line
func (c *Controller) fillet(a, b *scene.Entity) (*scene.Entity, error) {
	sa, okA := lineSegment(a)
	sb, okB := lineSegment(b)
	if !okA || !okB {
		return nil, errors.New("fillet needs two lines")
	}
	f, err := solver.Fillet(sa, sb, c.settings.FilletRadius)
	if err != nil {
		return nil, err
	}

	s1, s2 := f.Segments()
	var edges []kernel.Shape
	addEdge := func(s solver.Segment) error {
		if s.Length() < c.settings.DegenerateEpsilon {
			return nil
		}
		edge, err := c.kernel.BuildEdge(s.Start, s.End)
		if err != nil {
			return fmt.Errorf("build fillet line: %w", err)
		}
		edges = append(edges, edge)
		return nil
	}

	if err := addEdge(s1); err != nil {
		return nil, err
	}
	arc, err := c.kernel.BuildArc(f.Tangent1, f.Center, f.Tangent2)
	if err != nil {
		return nil, fmt.Errorf("build fillet arc: %w", err)
	}
	edges = append(edges, arc)
	if err := addEdge(s2); err != nil {
		return nil, err
	}

	wire, err := c.kernel.BuildWire(edges)
	if err != nil {
		return nil, fmt.Errorf("build fillet wire: %w", err)
	}

	ent := scene.NewShape(scene.Wire, wire, viewer.StyleSketch)
	ent.Points = []geometry.Vector3{f.Other1, f.Tangent1, f.Tangent2, f.Other2}
	c.scene.Remove(a.Handle)
	c.scene.Remove(b.Handle)
	c.scene.Add(ent)
	c.logger.Debug("corner filleted", zap.Stringer("corner", f.Corner), zap.Float64("radius", f.Radius))
	return ent, nil
}
