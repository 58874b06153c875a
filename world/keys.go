package world

// Key is a physical key the host tracks. Window backends translate their own
// key codes into these.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeySpace
	KeyLeftShift
	KeyLeftControl
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyEnter
	KeyTab
	KeyF1
)

var keyNames = [...]string{
	KeyUnknown:     "Unknown",
	KeyW:           "W",
	KeyA:           "A",
	KeyS:           "S",
	KeyD:           "D",
	KeyQ:           "Q",
	KeyE:           "E",
	KeySpace:       "Space",
	KeyLeftShift:   "LeftShift",
	KeyLeftControl: "LeftControl",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyEscape:      "Escape",
	KeyEnter:       "Enter",
	KeyTab:         "Tab",
	KeyF1:          "F1",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

// KeyState is the last reported state of a key.
type KeyState uint8

const (
	Released KeyState = iota
	Pressed
)

// MouseButton identifies a mouse button in input events.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)
