package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Time is the frame clock.
type Time struct {
	Delta   float32
	Elapsed float32
	Frame   uint64
}

// Keyboard holds the last reported state of every key seen so far.
type Keyboard struct {
	States map[Key]KeyState
}

func NewKeyboard() Keyboard {
	return Keyboard{States: make(map[Key]KeyState)}
}

func (k *Keyboard) Set(key Key, state KeyState) {
	if k.States == nil {
		k.States = make(map[Key]KeyState)
	}
	k.States[key] = state
}

func (k *Keyboard) IsPressed(key Key) bool {
	return k.States[key] == Pressed
}

// MouseButtons is a bit set of held buttons and per-frame motion flags.
type MouseButtons uint8

const (
	LeftClicked MouseButtons = 1 << iota
	MiddleClicked
	RightClicked
	Moved
	Scrolled
)

func (b MouseButtons) Has(flag MouseButtons) bool {
	return b&flag != 0
}

// Mouse is the pointer state. PositionDelta and WheelDelta accumulate over one
// tick and are cleared by ResetFrame together with the Moved and Scrolled bits.
type Mouse struct {
	Buttons          MouseButtons
	Position         mgl32.Vec2
	PositionDelta    mgl32.Vec2
	OffsetFromCenter mgl32.Vec2
	WheelDelta       mgl32.Vec2
}

// SetButton records a press or release of button.
func (m *Mouse) SetButton(button MouseButton, state KeyState) {
	var flag MouseButtons
	switch button {
	case MouseLeft:
		flag = LeftClicked
	case MouseMiddle:
		flag = MiddleClicked
	case MouseRight:
		flag = RightClicked
	default:
		return
	}
	if state == Pressed {
		m.Buttons |= flag
	} else {
		m.Buttons &^= flag
	}
}

// MoveTo records a cursor position in window pixels.
func (m *Mouse) MoveTo(position mgl32.Vec2, viewport Viewport) {
	m.PositionDelta = m.PositionDelta.Add(position.Sub(m.Position))
	m.Position = position
	m.OffsetFromCenter = position.Sub(mgl32.Vec2{float32(viewport.Width) / 2, float32(viewport.Height) / 2})
	m.Buttons |= Moved
}

// Scroll records wheel movement.
func (m *Mouse) Scroll(delta mgl32.Vec2) {
	m.WheelDelta = m.WheelDelta.Add(delta)
	m.Buttons |= Scrolled
}

// ResetFrame clears the per-tick deltas.
func (m *Mouse) ResetFrame() {
	m.PositionDelta = mgl32.Vec2{}
	m.WheelDelta = mgl32.Vec2{}
	m.Buttons &^= Moved | Scrolled
}

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  uint32
	Height uint32
}

// AspectRatio returns width over height, treating a zero height as 1.
func (v Viewport) AspectRatio() float32 {
	return float32(v.Width) / float32(max(v.Height, 1))
}
