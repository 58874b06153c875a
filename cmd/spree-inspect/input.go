package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/spree/app"
	"github.com/plus3/spree/world"
)

var keyMap = map[ebiten.Key]world.Key{
	ebiten.KeyW:           world.KeyW,
	ebiten.KeyA:           world.KeyA,
	ebiten.KeyS:           world.KeyS,
	ebiten.KeyD:           world.KeyD,
	ebiten.KeyQ:           world.KeyQ,
	ebiten.KeyE:           world.KeyE,
	ebiten.KeySpace:       world.KeySpace,
	ebiten.KeyShiftLeft:   world.KeyLeftShift,
	ebiten.KeyControlLeft: world.KeyLeftControl,
	ebiten.KeyArrowUp:     world.KeyUp,
	ebiten.KeyArrowDown:   world.KeyDown,
	ebiten.KeyArrowLeft:   world.KeyLeft,
	ebiten.KeyArrowRight:  world.KeyRight,
	ebiten.KeyEscape:      world.KeyEscape,
	ebiten.KeyEnter:       world.KeyEnter,
	ebiten.KeyTab:         world.KeyTab,
	ebiten.KeyF1:          world.KeyF1,
}

var mouseMap = map[ebiten.MouseButton]world.MouseButton{
	ebiten.MouseButtonLeft:   world.MouseLeft,
	ebiten.MouseButtonMiddle: world.MouseMiddle,
	ebiten.MouseButtonRight:  world.MouseRight,
}

// pollInput turns this tick's ebiten input into app events. Keyboard and
// mouse are skipped while imgui wants them.
type pollInput struct {
	lastX, lastY int
}

func (p *pollInput) events(captureKeyboard, captureMouse bool) []app.Event {
	var events []app.Event

	for key, k := range keyMap {
		switch {
		case inpututil.IsKeyJustPressed(key) && !captureKeyboard:
			events = append(events, app.KeyEvent{Key: k, State: world.Pressed})
		case inpututil.IsKeyJustReleased(key):
			events = append(events, app.KeyEvent{Key: k, State: world.Released})
		}
	}

	for button, b := range mouseMap {
		switch {
		case inpututil.IsMouseButtonJustPressed(button) && !captureMouse:
			events = append(events, app.MouseButtonEvent{Button: b, State: world.Pressed})
		case inpututil.IsMouseButtonJustReleased(button):
			events = append(events, app.MouseButtonEvent{Button: b, State: world.Released})
		}
	}

	if x, y := ebiten.CursorPosition(); x != p.lastX || y != p.lastY {
		p.lastX, p.lastY = x, y
		if !captureMouse {
			events = append(events, app.CursorMovedEvent{X: float32(x), Y: float32(y)})
		}
	}
	if dx, dy := ebiten.Wheel(); (dx != 0 || dy != 0) && !captureMouse {
		events = append(events, app.ScrollEvent{DX: float32(dx), DY: float32(dy)})
	}
	return events
}
