package viewer

import (
	"math"

	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
)

// PickTolerance is the pick radius in pixels
const PickTolerance = 5.0

// Item is a shape in the display list
type Item struct {
	Handle Handle
	Shape  kernel.Shape
	Style  Style
}

// Headless is a viewport and display without a window. It keeps a display
// list in insertion order and picks by casting rays through the kernel.
type Headless struct {
	kernel   kernel.Kernel
	camera   *Camera
	width    int
	height   int
	items    map[Handle]*Item
	order    []Handle
	overlays map[Handle]Overlay
	redraws  int

	OnRedraw func()
}

// NewHeadless creates a headless viewport with an orthographic top camera
func NewHeadless(k kernel.Kernel, width, height int) *Headless {
	return &Headless{
		kernel:   k,
		camera:   NewTopCamera(),
		width:    width,
		height:   height,
		items:    make(map[Handle]*Item),
		overlays: make(map[Handle]Overlay),
	}
}

var (
	_ Viewport = (*Headless)(nil)
	_ Display  = (*Headless)(nil)
	_ Zoomer   = (*Headless)(nil)
)

// Camera returns the camera used for projection
func (h *Headless) Camera() *Camera {
	return h.camera
}

// Resize changes the viewport size in pixels
func (h *Headless) Resize(width, height int) {
	h.width = width
	h.height = height
}

func (h *Headless) Size() (int, int) {
	return h.width, h.height
}

func (h *Headless) PixelToWorldRay(px geometry.Pixel) (geometry.Vector3, geometry.Vector3) {
	return h.camera.Unproject(float64(px.X), float64(px.Y), float64(h.width), float64(h.height))
}

// ScreenToWorld intersects the pixel ray with the plane through the world
// origin facing the camera
func (h *Headless) ScreenToWorld(px geometry.Pixel) geometry.Vector3 {
	origin, dir := h.PixelToWorldRay(px)
	forward, _, _ := h.camera.Basis()
	denom := forward.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return origin
	}
	t := -forward.Dot(origin) / denom
	return origin.Add(dir.Mul(t))
}

func (h *Headless) WorldToPixel(p geometry.Vector3) geometry.Pixel {
	x, y, _ := h.camera.Project(p, float64(h.width), float64(h.height))
	return geometry.NewPixel(int(math.Round(x)), int(math.Round(y)))
}

// PickUnderCursor returns the nearest object under px. Objects at the same
// depth resolve to the one displayed first.
func (h *Headless) PickUnderCursor(px geometry.Pixel, filter kernel.PickFilter) (Pick, bool) {
	origin, dir := h.PixelToWorldRay(px)
	ray := geometry.Ray{Origin: origin, Direction: dir}
	tol := PickTolerance / h.camera.PixelsPerUnit(float64(h.height))

	var best Pick
	found := false
	for _, handle := range h.order {
		item := h.items[handle]
		hit, ok := h.kernel.RayCast(item.Shape, ray, filter, tol)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Hit.Distance-1e-9 {
			best = Pick{Handle: handle, Hit: hit}
			found = true
		}
	}
	return best, found
}

// PickInRect returns every object with a vertex inside r, in display order
func (h *Headless) PickInRect(r geometry.Rect, filter kernel.PickFilter) []Pick {
	var picks []Pick
	for _, handle := range h.order {
		item := h.items[handle]
		if !filter.Accepts(item.Shape.Kind()) {
			continue
		}
		if h.inRect(item.Shape, r) {
			center := h.kernel.Bounds(item.Shape).Center()
			picks = append(picks, Pick{
				Handle: handle,
				Hit:    kernel.Hit{Sub: item.Shape, Point: center},
			})
		}
	}
	return picks
}

func (h *Headless) inRect(s kernel.Shape, r geometry.Rect) bool {
	for _, line := range h.kernel.Polylines(s) {
		for _, p := range line {
			if r.Contains(h.WorldToPixel(p)) {
				return true
			}
		}
	}
	return false
}

// Redraw counts frames and notifies OnRedraw
func (h *Headless) Redraw() {
	h.redraws++
	if h.OnRedraw != nil {
		h.OnRedraw()
	}
}

// Redraws returns how often Redraw was called
func (h *Headless) Redraws() int {
	return h.redraws
}

func (h *Headless) Show(handle Handle, s kernel.Shape, style Style) {
	if _, exists := h.items[handle]; !exists {
		h.order = append(h.order, handle)
	}
	h.items[handle] = &Item{Handle: handle, Shape: s, Style: style}
}

// Replace swaps the shape behind handle, keeping its display position
func (h *Headless) Replace(handle Handle, s kernel.Shape, style Style) {
	h.Show(handle, s, style)
}

func (h *Headless) Erase(handle Handle) {
	if _, exists := h.items[handle]; !exists {
		return
	}
	delete(h.items, handle)
	for i, o := range h.order {
		if o == handle {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *Headless) ShowOverlay(handle Handle, o Overlay) {
	h.overlays[handle] = o
}

func (h *Headless) RemoveOverlay(handle Handle) {
	delete(h.overlays, handle)
}

// Items returns the display list in display order
func (h *Headless) Items() []Item {
	items := make([]Item, 0, len(h.order))
	for _, handle := range h.order {
		items = append(items, *h.items[handle])
	}
	return items
}

// Item returns the displayed object behind handle
func (h *Headless) Item(handle Handle) (Item, bool) {
	item, ok := h.items[handle]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Overlays returns the visible overlays
func (h *Headless) Overlays() map[Handle]Overlay {
	out := make(map[Handle]Overlay, len(h.overlays))
	for k, v := range h.overlays {
		out[k] = v
	}
	return out
}

func (h *Headless) Scale() float64 {
	return h.camera.PixelsPerUnit(float64(h.height))
}

// SetScale sets the pixels per model unit at the camera target
func (h *Headless) SetScale(scale float64) {
	if scale <= 0 {
		return
	}
	if h.camera.Ortho {
		h.camera.Scale = scale
		return
	}
	h.camera.Distance = float64(h.height) / (2 * scale * math.Tan(h.camera.FOV/2))
	h.camera.UpdatePosition()
}

func (h *Headless) FitScale(r geometry.Rect) float64 {
	if r.Width() <= 0 || r.Height() <= 0 {
		return h.Scale()
	}
	factor := math.Min(float64(h.width)/float64(r.Width()), float64(h.height)/float64(r.Height()))
	return h.Scale() * factor
}

func (h *Headless) Center() geometry.Vector3 {
	return h.camera.Target
}

func (h *Headless) SetCenter(c geometry.Vector3) {
	h.camera.SetTarget(c)
}
