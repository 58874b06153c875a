// Package desktop drives an app.App from a glfw window. All glfw calls happen
// on the main OS thread.
package desktop

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/plus3/spree/app"
	"github.com/plus3/spree/gpu"
	"github.com/plus3/spree/graphics"
	"github.com/plus3/spree/world"
)

func init() {
	runtime.LockOSThread()
}

type Options struct {
	Width, Height int
	Title         string
	Backend       gpu.Backend
	Graphics      graphics.Config
}

// Run opens a window, builds the surface and renderer, and ticks the app until
// Escape or a close request. Setup failures wrap graphics.ErrInit.
func Run(opts Options, w *world.World, state app.State) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: glfw: %w", graphics.ErrInit, err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: create window: %w", graphics.ErrInit, err)
	}
	defer window.Destroy()

	fbWidth, fbHeight := window.GetFramebufferSize()
	surfaces, err := graphics.NewSurfaceManager(opts.Backend, window, uint32(max(fbWidth, 0)), uint32(max(fbHeight, 0)), opts.Graphics)
	if err != nil {
		return err
	}

	a := app.New(w, surfaces, graphics.NewFrameRenderer(opts.Graphics), state)
	defer a.Close()

	queue := &eventQueue{}
	queue.attach(window)

	log.Printf("desktop: running %q at %dx%d", opts.Title, fbWidth, fbHeight)
	for !a.ShouldExit() {
		glfw.PollEvents()
		for _, e := range queue.drain() {
			if err := a.HandleEvent(e); err != nil {
				return err
			}
		}
		if a.ShouldExit() {
			break
		}
		if err := a.Tick(); err != nil {
			return err
		}
	}
	log.Printf("desktop: exiting after %d ticks", a.Ticks())
	return nil
}

// eventQueue collects callback events during PollEvents so the app sees them
// in order, before the tick.
type eventQueue struct {
	events []app.Event
}

func (q *eventQueue) push(e app.Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) drain() []app.Event {
	events := q.events
	q.events = nil
	return events
}

func (q *eventQueue) attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if e, ok := keyEvent(key, action); ok {
			q.push(e)
		}
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if b, ok := translateMouseButton(button); ok {
			q.push(app.MouseButtonEvent{Button: b, State: translateAction(action)})
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		q.push(app.CursorMovedEvent{X: float32(x), Y: float32(y)})
	})
	window.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		q.push(app.ScrollEvent{DX: float32(dx), DY: float32(dy)})
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		q.push(app.ResizedEvent{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))})
	})
	window.SetCloseCallback(func(w *glfw.Window) {
		w.SetShouldClose(false)
		q.push(app.CloseRequestedEvent{})
	})
}
