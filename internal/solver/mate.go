// Package solver computes the rigid transforms and construction geometry the
// sketch tools hand to the kernel.
package solver

import (
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
)

const (
	// axisEpsilon is the rotation axis length below which n1 and the target
	// normal are treated as parallel
	axisEpsilon = 1e-9
	// alignedDot separates already aligned normals from antiparallel ones
	alignedDot = 0.9999
)

// ComputeFaceToFaceMate returns the transform that turns a face at p1 with
// outward normal n1 so it faces opposite n2, then moves p1 onto p2
func ComputeFaceToFaceMate(p1, n1, p2, n2 geometry.Vector3) geometry.Transform {
	from := n1.Normalize()
	target := n2.Normalize().Negate()
	axis := from.Cross(target)
	dot := from.Dot(target)

	rotation := geometry.Identity()
	if axis.Length() < axisEpsilon {
		if dot < alignedDot {
			perp := geometry.NewVector3(1, 0, 0)
			if math.Abs(from.X) > 0.9 {
				perp = geometry.NewVector3(0, 1, 0)
			}
			flipAxis := geometry.Axis{Origin: p1, Direction: from.Cross(perp)}
			rotation = geometry.Rotation(flipAxis, math.Pi)
		}
	} else {
		angle := math.Acos(math.Max(-1, math.Min(1, dot)))
		rotation = geometry.Rotation(geometry.Axis{Origin: p1, Direction: axis}, angle)
	}

	moved := rotation.Apply(p1)
	return geometry.Translation(p2.Sub(moved)).Mul(rotation)
}

// ComposeMate returns the new placement of a body currently placed with
// owner after applying a mate computed in world space. Expressed in the
// owner's frame the mate is owner⁻¹·mate·owner, so the result is
// owner·(owner⁻¹·mate·owner).
func ComposeMate(owner, mate geometry.Transform) geometry.Transform {
	local := owner.Inverse().Mul(mate).Mul(owner)
	return owner.Mul(local)
}
