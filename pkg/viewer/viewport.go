package viewer

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
	"golang.org/x/image/colornames"
)

// Handle identifies a displayed object
type Handle = uuid.UUID

// NewHandle returns a fresh display handle
func NewHandle() Handle {
	return uuid.New()
}

// Pick is an object found under the cursor
type Pick struct {
	Handle Handle
	Hit    kernel.Hit
}

// Viewport converts between pixels and world space and picks displayed objects
type Viewport interface {
	PixelToWorldRay(px geometry.Pixel) (origin, dir geometry.Vector3)
	ScreenToWorld(px geometry.Pixel) geometry.Vector3
	WorldToPixel(p geometry.Vector3) geometry.Pixel
	Size() (width, height int)
	PickUnderCursor(px geometry.Pixel, filter kernel.PickFilter) (Pick, bool)
	PickInRect(r geometry.Rect, filter kernel.PickFilter) []Pick
	Redraw()
}

// Zoomer changes the view scale in pixels per model unit and the point the
// view is centered on
type Zoomer interface {
	Scale() float64
	SetScale(scale float64)
	// FitScale returns the scale at which r fills the viewport
	FitScale(r geometry.Rect) float64
	Center() geometry.Vector3
	SetCenter(c geometry.Vector3)
}

// Display owns the visible objects
type Display interface {
	Show(h Handle, s kernel.Shape, style Style)
	Replace(h Handle, s kernel.Shape, style Style)
	Erase(h Handle)
	ShowOverlay(h Handle, o Overlay)
	RemoveOverlay(h Handle)
}

// LinePattern selects how lines are stroked
type LinePattern int

const (
	Solid LinePattern = iota
	Dashed
	Dotted
)

// Style describes how a shape is drawn
type Style struct {
	Color        color.RGBA
	Pattern      LinePattern
	Transparency float64 // 0 opaque, 1 invisible
}

// Named styles for sketch entities and operation results
var (
	StyleSketch    = Style{Color: colornames.White}
	StyleUnion     = Style{Color: colornames.Green}
	StyleCut       = Style{Color: colornames.Red}
	StyleIntersect = Style{Color: colornames.Yellow}
	StyleSolid     = Style{Color: colornames.Orange}
	StylePreview   = Style{Color: colornames.Pink, Transparency: 0.5}
	StyleHighlight = Style{Color: colornames.Cyan}
	StyleOverlay   = Style{Color: colornames.Lightgray, Pattern: Dashed}
	StyleDimension = Style{Color: colornames.Skyblue}
)

// Alpha returns the style color with transparency applied
func (s Style) Alpha() color.RGBA {
	c := s.Color
	c.A = uint8(float64(c.A) * (1 - s.Transparency))
	return c
}

// OverlayKind is the primitive drawn by an overlay
type OverlayKind int

const (
	OverlayPolyline OverlayKind = iota
	OverlayCircle
	OverlayEllipse
)

// Overlay is transient preview geometry that is never part of the model.
// Billboard overlays are given in flipped screen coordinates (X right,
// Y up, Z zero) and stay pinned to the camera.
type Overlay struct {
	Kind      OverlayKind
	Points    []geometry.Vector3 // Polyline vertices
	Closed    bool               // Polyline returns to its first point
	Center    geometry.Vector3
	UDir      geometry.Vector3 // Ellipse/circle first axis
	VDir      geometry.Vector3 // Ellipse/circle second axis
	RadiusU   float64
	RadiusV   float64
	Billboard bool
	Style     Style
}

// Outline tessellates the overlay into a single line strip
func (o Overlay) Outline() []geometry.Vector3 {
	switch o.Kind {
	case OverlayCircle, OverlayEllipse:
		u, v := o.UDir, o.VDir
		if u.Length() == 0 || v.Length() == 0 {
			u, v = geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)
		}
		rv := o.RadiusV
		if o.Kind == OverlayCircle {
			rv = o.RadiusU
		}
		return geometry.SampleEllipse(o.Center, u.Normalize(), v.Normalize(), o.RadiusU, rv, geometry.DefaultSegments)
	}
	if o.Closed && len(o.Points) > 0 {
		return append(append([]geometry.Vector3{}, o.Points...), o.Points[0])
	}
	return o.Points
}
