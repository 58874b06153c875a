package app

import (
	"fmt"

	"github.com/plus3/spree/world"
)

// Event is an input or window notification forwarded by a window backend.
type Event interface {
	fmt.Stringer
	event()
}

type KeyEvent struct {
	Key   world.Key
	State world.KeyState
}

type MouseButtonEvent struct {
	Button world.MouseButton
	State  world.KeyState
}

// CursorMovedEvent carries the cursor position in window pixels.
type CursorMovedEvent struct {
	X, Y float32
}

type ScrollEvent struct {
	DX, DY float32
}

// ResizedEvent carries the new drawable size in pixels.
type ResizedEvent struct {
	Width, Height uint32
}

type CloseRequestedEvent struct{}

func (KeyEvent) event()            {}
func (MouseButtonEvent) event()    {}
func (CursorMovedEvent) event()    {}
func (ScrollEvent) event()         {}
func (ResizedEvent) event()        {}
func (CloseRequestedEvent) event() {}

func (e KeyEvent) String() string {
	return fmt.Sprintf("key %s %s", e.Key, stateName(e.State))
}

func (e MouseButtonEvent) String() string {
	return fmt.Sprintf("mouse button %d %s", e.Button, stateName(e.State))
}

func (e CursorMovedEvent) String() string {
	return fmt.Sprintf("cursor moved to (%.1f, %.1f)", e.X, e.Y)
}

func (e ScrollEvent) String() string {
	return fmt.Sprintf("scroll (%.2f, %.2f)", e.DX, e.DY)
}

func (e ResizedEvent) String() string {
	return fmt.Sprintf("resized to %dx%d", e.Width, e.Height)
}

func (CloseRequestedEvent) String() string { return "close requested" }

func stateName(s world.KeyState) string {
	if s == world.Pressed {
		return "pressed"
	}
	return "released"
}
