package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spree/app"
	"github.com/plus3/spree/world"
)

// cameraPanel shows the active camera and the frame counters and lets the
// user switch cameras or recolor the clear pass.
type cameraPanel struct {
	app   *app.App
	clear [4]float32
}

func newCameraPanel(a *app.App) *cameraPanel {
	c := a.Renderer.ClearColor()
	return &cameraPanel{app: a, clear: [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}}
}

func (p *cameraPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Camera", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	w := p.app.World
	viewport := *w.Viewport.Get()
	imgui.Text(fmt.Sprintf("Viewport: %dx%d (aspect %.3f)", viewport.Width, viewport.Height, viewport.AspectRatio()))
	imgui.Text(fmt.Sprintf("Surface: %s", p.app.Surfaces.Format()))

	stats := p.app.Renderer.Stats()
	imgui.Text(fmt.Sprintf("Frames: %d rendered, %d skipped", stats.Rendered, stats.Skipped))
	imgui.Text(fmt.Sprintf("Time: %.2fs, frame %d", w.Time.Get().Elapsed, w.Time.Get().Frame))
	imgui.Separator()

	id, m, ok := w.ActiveCameraMatrices()
	if !ok {
		imgui.Text("No active camera")
	} else {
		imgui.Text(fmt.Sprintf("Active camera: %d:%d", id.Index(), id.Generation()))
		pos := m.CameraPosition
		imgui.Text(fmt.Sprintf("Position: (%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z()))
		if imgui.TreeNodeStr("Projection") {
			matrixText(m.Projection)
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("View") {
			matrixText(m.View)
			imgui.TreePop()
		}
	}
	if imgui.Button("Next camera") {
		p.app.HandleEvent(app.KeyEvent{Key: world.KeyTab, State: world.Pressed})
		p.app.HandleEvent(app.KeyEvent{Key: world.KeyTab, State: world.Released})
	}

	imgui.Separator()
	changed := false
	for i, name := range []string{"R", "G", "B"} {
		imgui.SetNextItemWidth(120)
		if imgui.InputFloat("Clear "+name, &p.clear[i]) {
			changed = true
		}
	}
	if changed {
		p.app.Renderer.SetClearColor(clearColor(p.clear))
	}
}

func matrixText(m [16]float32) {
	for row := range 4 {
		imgui.Text(fmt.Sprintf("%8.3f %8.3f %8.3f %8.3f", m[row], m[row+4], m[row+8], m[row+12]))
	}
}
