package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosketch/version"
)

var helpLines = []string{
	"L line   C circle   Q rectangle   E ellipse",
	"T trim   F fillet   S extrude   W revolve (Enter commits)",
	"M move   R rotate   P mate   O dimension   Z zoom window",
	"U union   D cut   I intersect",
	"Esc cancel   Backspace undo",
	"Right drag orbit   Shift+right or middle drag pan   Wheel zoom",
	"Home top view   1 tilted view   H toggle help",
}

// drawUI draws the status panel and the key help
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	ctrl := app.Session
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("Mode: %s", ctrl.CurrentMode()), rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	if hint := ctrl.Hint(); hint != "" {
		rl.DrawTextEx(app.UI.font, hint, rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
	}
	if ctrl.Zooming() {
		rl.DrawTextEx(app.UI.font, "zooming...", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
	}
	y += lineHeight / 2

	report := ctrl.Scene().Report()
	rl.DrawTextEx(app.UI.font, "Entities:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	for _, kind := range report.Kinds() {
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %s: %d", kind, report.Counts[kind]), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
	}
	if !report.BoundingBox.IsEmpty() {
		d := report.Dimensions
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Size: %.2f x %.2f x %.2f", d.X, d.Y, d.Z), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(100, 200, 255, 255))
	}

	if app.UI.message != "" {
		size := rl.MeasureTextEx(app.UI.font, app.UI.message, fontSize14, 1)
		rl.DrawTextEx(app.UI.font, app.UI.message, rl.Vector2{X: screenWidth - size.X - 20, Y: 10}, fontSize14, 1, rl.LightGray)
	}

	if app.UI.showHelp {
		y = screenHeight - float32(len(helpLines)+1)*lineHeight
		for _, line := range helpLines {
			rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
			y += lineHeight
		}
	}

	v := "gosketch " + version.GetVersion()
	size := rl.MeasureTextEx(app.UI.font, v, fontSize14, 1)
	rl.DrawTextEx(app.UI.font, v, rl.Vector2{X: screenWidth - size.X - 10, Y: screenHeight - lineHeight}, fontSize14, 1, rl.Gray)
}
