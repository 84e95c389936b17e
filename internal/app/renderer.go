package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/internal/scene"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/philipparndt/gosketch/pkg/viewer"
)

const (
	lineThickness = 1.5
	dashLength    = 6
	labelFontSize = 16
	labelSpacing  = 1
)

// colorOf converts a display style to a raylib color
func colorOf(style viewer.Style) rl.Color {
	c := style.Alpha()
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// project maps a world point to the window
func (app *App) project(p geometry.Vector3) rl.Vector2 {
	w, h := app.View.Size()
	x, y, _ := app.View.Camera().Project(p, float64(w), float64(h))
	return rl.Vector2{X: float32(x), Y: float32(y)}
}

// projectOverlay maps overlay points; billboards are in flipped screen space
func (app *App) projectOverlay(p geometry.Vector3, billboard bool) rl.Vector2 {
	if billboard {
		_, h := app.View.Size()
		return rl.Vector2{X: float32(p.X), Y: float32(float64(h) - p.Y)}
	}
	return app.project(p)
}

// drawScene draws the display list, the overlays and the dimension labels
func (app *App) drawScene() {
	for _, item := range app.View.Items() {
		col := colorOf(item.Style)
		for _, strip := range app.Kernel.Polylines(item.Shape) {
			points := make([]rl.Vector2, len(strip))
			for i, p := range strip {
				points[i] = app.project(p)
			}
			drawStrip(points, item.Style.Pattern, col)
		}
	}

	for _, o := range app.View.Overlays() {
		outline := o.Outline()
		points := make([]rl.Vector2, len(outline))
		for i, p := range outline {
			points[i] = app.projectOverlay(p, o.Billboard)
		}
		drawStrip(points, o.Style.Pattern, colorOf(o.Style))
	}

	app.drawDimensionLabels()
}

func drawStrip(points []rl.Vector2, pattern viewer.LinePattern, col rl.Color) {
	for i := 0; i+1 < len(points); i++ {
		if pattern == viewer.Solid {
			rl.DrawLineEx(points[i], points[i+1], lineThickness, col)
			continue
		}
		for _, d := range dashes(points[i], points[i+1], dashLength) {
			rl.DrawLineEx(d[0], d[1], 1, col)
		}
	}
}

// dashes splits a segment into dashes of length n with gaps of the same length
func dashes(a, b rl.Vector2, n float32) [][2]rl.Vector2 {
	length := rl.Vector2Distance(a, b)
	if length == 0 || n <= 0 {
		return nil
	}
	dir := rl.Vector2Scale(rl.Vector2Subtract(b, a), 1/length)

	var out [][2]rl.Vector2
	for s := float32(0); s < length; s += 2 * n {
		e := min(s+n, length)
		out = append(out, [2]rl.Vector2{
			rl.Vector2Add(a, rl.Vector2Scale(dir, s)),
			rl.Vector2Add(a, rl.Vector2Scale(dir, e)),
		})
	}
	return out
}

// screenAngle returns the text rotation in degrees for a label running from
// a to b on screen, flipped so text never reads upside down
func screenAngle(a, b rl.Vector2) float32 {
	deg := float32(math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X)) * 180 / math.Pi)
	if deg > 90 {
		deg -= 180
	}
	if deg < -90 {
		deg += 180
	}
	return deg
}

func (app *App) drawDimensionLabels() {
	for _, e := range app.Session.Scene().Entities() {
		if e.Kind != scene.Dimension || e.Label == "" {
			continue
		}
		rad := e.LabelAngle * math.Pi / 180
		along := geometry.NewVector3(math.Cos(rad), math.Sin(rad), 0)

		at := e.Transform.Apply(e.LabelAt)
		pos := app.project(at)
		angle := screenAngle(pos, app.project(at.Add(e.Transform.ApplyVector(along))))

		size := rl.MeasureTextEx(app.UI.font, e.Label, labelFontSize, labelSpacing)
		origin := rl.Vector2{X: size.X / 2, Y: size.Y}
		rl.DrawTextPro(app.UI.font, e.Label, pos, origin, angle, labelFontSize, labelSpacing, colorOf(e.Style))
	}
}
