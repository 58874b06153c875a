package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/plus3/spree/app"
	"github.com/plus3/spree/world"
)

var keyMap = map[glfw.Key]world.Key{
	glfw.KeyW:           world.KeyW,
	glfw.KeyA:           world.KeyA,
	glfw.KeyS:           world.KeyS,
	glfw.KeyD:           world.KeyD,
	glfw.KeyQ:           world.KeyQ,
	glfw.KeyE:           world.KeyE,
	glfw.KeySpace:       world.KeySpace,
	glfw.KeyLeftShift:   world.KeyLeftShift,
	glfw.KeyLeftControl: world.KeyLeftControl,
	glfw.KeyUp:          world.KeyUp,
	glfw.KeyDown:        world.KeyDown,
	glfw.KeyLeft:        world.KeyLeft,
	glfw.KeyRight:       world.KeyRight,
	glfw.KeyEscape:      world.KeyEscape,
	glfw.KeyEnter:       world.KeyEnter,
	glfw.KeyTab:         world.KeyTab,
	glfw.KeyF1:          world.KeyF1,
}

func translateKey(key glfw.Key) world.Key {
	if k, ok := keyMap[key]; ok {
		return k
	}
	return world.KeyUnknown
}

// translateAction folds key repeat into Pressed.
func translateAction(action glfw.Action) world.KeyState {
	if action == glfw.Release {
		return world.Released
	}
	return world.Pressed
}

func translateMouseButton(button glfw.MouseButton) (world.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return world.MouseLeft, true
	case glfw.MouseButtonMiddle:
		return world.MouseMiddle, true
	case glfw.MouseButtonRight:
		return world.MouseRight, true
	}
	return 0, false
}

// keyEvent returns false for keys the host does not track.
func keyEvent(key glfw.Key, action glfw.Action) (app.KeyEvent, bool) {
	k := translateKey(key)
	if k == world.KeyUnknown {
		return app.KeyEvent{}, false
	}
	return app.KeyEvent{Key: k, State: translateAction(action)}, true
}
