// Package projection maps viewport pixels to world points, either on the
// camera-facing plane or on a construction plane picked from a face.
package projection

import (
	"errors"
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

// ParallelEpsilon is the smallest |N·D| accepted for a ray-plane intersection
const ParallelEpsilon = 1e-9

// ErrRayParallel is returned when the pointer ray does not cross the plane
var ErrRayParallel = errors.New("ray is parallel to plane")

// IntersectRay intersects the ray origin + t*dir with plane
func IntersectRay(origin, dir geometry.Vector3, plane geometry.Plane) (geometry.Vector3, error) {
	n := plane.Normal
	denom := n.Dot(dir)
	if math.Abs(denom) < ParallelEpsilon {
		return geometry.Vector3{}, ErrRayParallel
	}
	t := -n.Dot(origin.Sub(plane.Origin)) / denom
	return origin.Add(dir.Mul(t)), nil
}

// Service resolves pixels through a viewport
type Service struct {
	viewport viewer.Viewport
	kernel   kernel.Kernel
}

// New creates a projection service
func New(viewport viewer.Viewport, k kernel.Kernel) *Service {
	return &Service{viewport: viewport, kernel: k}
}

// ScreenToWorld returns the point under px on the camera-facing plane
func (s *Service) ScreenToWorld(px geometry.Pixel) geometry.Vector3 {
	return s.viewport.ScreenToWorld(px)
}

// ScreenToPlane returns the point under px on plane
func (s *Service) ScreenToPlane(px geometry.Pixel, plane geometry.Plane) (geometry.Vector3, error) {
	origin, dir := s.viewport.PixelToWorldRay(px)
	return IntersectRay(origin, dir, plane)
}

// AcquirePlaneFromFace returns the plane of the planar face under px.
// It reports false when no face is found or the face is not planar, and the
// caller stays in screen mode.
func (s *Service) AcquirePlaneFromFace(px geometry.Pixel) (geometry.Plane, bool) {
	pick, ok := s.viewport.PickUnderCursor(px, kernel.PickFace)
	if !ok || pick.Hit.Sub == nil {
		return geometry.Plane{}, false
	}
	plane, ok := s.kernel.FacePlane(pick.Hit.Sub)
	if !ok {
		return geometry.Plane{}, false
	}
	// Anchor the plane where the face was hit so drags start under the cursor
	plane.Origin = pick.Hit.Point
	return plane, true
}
