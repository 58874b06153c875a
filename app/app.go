// Package app implements the per-tick protocol shared by the window backends:
// events first, then the world update, the state hook and one rendered frame.
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/graphics"
	"github.com/plus3/spree/world"
)

// maxDelta bounds a single tick so a stall does not fling the camera.
const maxDelta = 250 * time.Millisecond

type Option func(*App)

// WithClock replaces time.Now for delta time measurement.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithFixedDelta makes every tick advance the world by d.
func WithFixedDelta(d time.Duration) Option {
	return func(a *App) {
		a.now = func() time.Time { return a.last.Add(d) }
	}
}

type App struct {
	World    *world.World
	Surfaces *graphics.SurfaceManager
	Renderer *graphics.FrameRenderer

	state State
	now   func() time.Time
	last  time.Time
	ticks uint64
	exit  bool
}

// New wires the world to a surface manager and renderer, sizes the viewport to
// the surface and runs state.Initialize.
func New(w *world.World, surfaces *graphics.SurfaceManager, renderer *graphics.FrameRenderer, state State, opts ...Option) *App {
	if state == nil {
		state = NopState{}
	}
	a := &App{
		World:    w,
		Surfaces: surfaces,
		Renderer: renderer,
		state:    state,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	w.Resize(surfaces.Size())
	state.Initialize(w)
	a.last = a.now()
	return a
}

// HandleEvent applies e to the resources and forwards it to the state. A
// resize reconfigures the surface before the next frame.
func (a *App) HandleEvent(e Event) error {
	switch e := e.(type) {
	case KeyEvent:
		a.World.Keyboard.Get().Set(e.Key, e.State)
		if e.Key == world.KeyEscape && e.State == world.Pressed {
			a.RequestExit()
		}
	case MouseButtonEvent:
		a.World.Mouse.Get().SetButton(e.Button, e.State)
	case CursorMovedEvent:
		a.World.Mouse.Get().MoveTo(mgl32.Vec2{e.X, e.Y}, *a.World.Viewport.Get())
	case ScrollEvent:
		a.World.Mouse.Get().Scroll(mgl32.Vec2{e.DX, e.DY})
	case ResizedEvent:
		if err := a.Surfaces.Resize(e.Width, e.Height); err != nil {
			return fmt.Errorf("app: %w", err)
		}
		a.World.Resize(a.Surfaces.Size())
	case CloseRequestedEvent:
		log.Println("app: close requested, exiting")
		a.RequestExit()
	}
	a.state.ReceiveEvent(a.World, e)
	return nil
}

// Tick advances the world and renders one frame. A skipped frame is not an
// error; the next tick retries.
func (a *App) Tick() error {
	now := a.now()
	dt := min(max(now.Sub(a.last), 0), maxDelta)
	a.last = now
	a.ticks++

	if err := a.World.Update(float32(dt.Seconds())); err != nil {
		return fmt.Errorf("app: update: %w", err)
	}
	a.state.Update(a.World)

	err := a.Renderer.Render(a.Surfaces)
	a.World.ResetInput()
	if errors.Is(err, graphics.ErrFrameSkipped) {
		log.Printf("app: frame %d skipped: %v", a.ticks, err)
		return nil
	}
	return err
}

// RequestExit makes ShouldExit report true.
func (a *App) RequestExit() { a.exit = true }

func (a *App) ShouldExit() bool { return a.exit }

// Ticks returns the number of Tick calls so far.
func (a *App) Ticks() uint64 { return a.ticks }

// Close releases the GPU objects.
func (a *App) Close() {
	a.Surfaces.Close()
}
