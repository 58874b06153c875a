package app

import "github.com/plus3/spree/world"

// State is the user hook into the frame protocol. Initialize runs once before
// the first tick, ReceiveEvent after the App has applied an event to the
// resources, and Update after the world systems ran for the tick.
type State interface {
	Initialize(w *world.World)
	ReceiveEvent(w *world.World, e Event)
	Update(w *world.World)
}

// NopState implements State with empty hooks. Embed it to override only some
// of them.
type NopState struct{}

func (NopState) Initialize(*world.World)          {}
func (NopState) ReceiveEvent(*world.World, Event) {}
func (NopState) Update(*world.World)              {}
