package viewer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/kernel"
)

// InputHandler receives pointer and key events in pixel coordinates
type InputHandler interface {
	OnPointerDown(px geometry.Pixel)
	OnPointerMove(px geometry.Pixel, buttonDown bool)
	OnPointerUp(px geometry.Pixel)
	OnKeyUp(key string)
}

// SketchView is a fyne widget that draws a Headless display list and
// forwards input to an InputHandler
type SketchView struct {
	widget.BaseWidget
	view       *Headless
	kernel     kernel.Kernel
	handler    InputHandler
	lines      []*canvas.Line
	buttonDown bool
	width      float64
	height     float64
}

var (
	_ desktop.Mouseable = (*SketchView)(nil)
	_ desktop.Hoverable = (*SketchView)(nil)
	_ fyne.Draggable    = (*SketchView)(nil)
	_ fyne.Focusable    = (*SketchView)(nil)
	_ fyne.Scrollable   = (*SketchView)(nil)
)

// NewSketchView creates a sketch widget rendering through k
func NewSketchView(k kernel.Kernel) *SketchView {
	v := &SketchView{
		view:   NewHeadless(k, 800, 600),
		kernel: k,
		width:  800,
		height: 600,
	}
	v.view.OnRedraw = v.Refresh
	v.ExtendBaseWidget(v)
	return v
}

// Viewport returns the viewport, display and zoomer behind the widget
func (v *SketchView) Viewport() *Headless {
	return v.view
}

// SetHandler sets the receiver of input events
func (v *SketchView) SetHandler(h InputHandler) {
	v.handler = h
}

// CreateRenderer creates the renderer for the widget
func (v *SketchView) CreateRenderer() fyne.WidgetRenderer {
	return &sketchWidgetRenderer{view: v}
}

// Render rebuilds the line objects for the given size
func (v *SketchView) Render(width, height float64) {
	v.width = width
	v.height = height
	v.view.Resize(int(width), int(height))

	v.lines = v.lines[:0]
	for _, item := range v.view.Items() {
		for _, strip := range v.kernel.Polylines(item.Shape) {
			v.addStrip(strip, item.Style, false)
		}
	}
	for _, o := range v.view.Overlays() {
		v.addStrip(o.Outline(), o.Style, o.Billboard)
	}
}

func (v *SketchView) addStrip(points []geometry.Vector3, style Style, billboard bool) {
	col := style.Alpha()
	width := float32(1.5)
	if style.Pattern != Solid {
		width = 1
	}
	for i := 0; i+1 < len(points); i++ {
		x1, y1 := v.toScreen(points[i], billboard)
		x2, y2 := v.toScreen(points[i+1], billboard)

		line := canvas.NewLine(col)
		line.StrokeWidth = width
		line.Position1 = fyne.NewPos(float32(x1), float32(y1))
		line.Position2 = fyne.NewPos(float32(x2), float32(y2))
		v.lines = append(v.lines, line)
	}
}

// toScreen maps world points, or flipped screen points for billboards
func (v *SketchView) toScreen(p geometry.Vector3, billboard bool) (float64, float64) {
	if billboard {
		return p.X, v.height - p.Y
	}
	x, y, _ := v.view.Camera().Project(p, v.width, v.height)
	return x, y
}

func pixelOf(pos fyne.Position) geometry.Pixel {
	return geometry.NewPixel(int(pos.X), int(pos.Y))
}

// MouseDown starts a pointer press
func (v *SketchView) MouseDown(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	v.buttonDown = true
	if v.handler != nil {
		v.handler.OnPointerDown(pixelOf(event.Position))
	}
}

// MouseUp ends a pointer press
func (v *SketchView) MouseUp(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	v.buttonDown = false
	if v.handler != nil {
		v.handler.OnPointerUp(pixelOf(event.Position))
	}
}

func (v *SketchView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved forwards hover movement
func (v *SketchView) MouseMoved(event *desktop.MouseEvent) {
	if v.handler != nil {
		v.handler.OnPointerMove(pixelOf(event.Position), v.buttonDown)
	}
}

func (v *SketchView) MouseOut() {}

// Dragged forwards movement while the primary button is held
func (v *SketchView) Dragged(event *fyne.DragEvent) {
	if v.handler != nil {
		v.handler.OnPointerMove(pixelOf(event.Position), true)
	}
}

func (v *SketchView) DragEnd() {}

// Scrolled zooms about the view center
func (v *SketchView) Scrolled(event *fyne.ScrollEvent) {
	delta := -float64(event.Scrolled.DY) * 0.001
	v.view.Camera().Zoom(delta)
	v.Refresh()
}

func (v *SketchView) FocusGained() {}

func (v *SketchView) FocusLost() {}

func (v *SketchView) TypedRune(rune) {}

// TypedKey forwards key releases to the handler
func (v *SketchView) TypedKey(event *fyne.KeyEvent) {
	if v.handler == nil {
		return
	}
	v.handler.OnKeyUp(KeyName(event.Name))
}

// KeyName converts a fyne key to the names used by key bindings
func KeyName(name fyne.KeyName) string {
	switch name {
	case fyne.KeyEscape:
		return "Escape"
	case fyne.KeyReturn, fyne.KeyEnter:
		return "Enter"
	case fyne.KeyBackspace, fyne.KeyDelete:
		return "Backspace"
	}
	return string(name)
}

// sketchWidgetRenderer implements fyne.WidgetRenderer
type sketchWidgetRenderer struct {
	view    *SketchView
	objects []fyne.CanvasObject
}

func (r *sketchWidgetRenderer) Layout(size fyne.Size) {
	r.view.Render(float64(size.Width), float64(size.Height))
	r.rebuild()
}

func (r *sketchWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sketchWidgetRenderer) Refresh() {
	r.view.Render(r.view.width, r.view.height)
	r.rebuild()
	canvas.Refresh(r.view)
}

func (r *sketchWidgetRenderer) rebuild() {
	r.objects = make([]fyne.CanvasObject, 0, len(r.view.lines))
	for _, line := range r.view.lines {
		r.objects = append(r.objects, line)
	}
}

func (r *sketchWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sketchWidgetRenderer) Destroy() {}
