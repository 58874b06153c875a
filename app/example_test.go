package app_test

import (
	"fmt"

	"github.com/plus3/spree/app"
	"github.com/plus3/spree/gpu/headless"
	"github.com/plus3/spree/graphics"
	"github.com/plus3/spree/world"
)

func Example() {
	backend := headless.New()
	surfaces, err := graphics.NewSurfaceManager(backend, nil, 64, 48, graphics.DefaultConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	a := app.New(world.New(), surfaces, graphics.NewFrameRenderer(graphics.DefaultConfig()), app.NewDemoState())
	defer a.Close()

	for frame := 0; !a.ShouldExit(); frame++ {
		if frame == 3 {
			a.HandleEvent(app.KeyEvent{Key: world.KeyEscape, State: world.Pressed})
			continue
		}
		if err := a.Tick(); err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Println("presented:", backend.Surface().Presented())
	fmt.Println("size:", backend.Surface().LastFrame().Bounds().Size())
	// Output:
	// presented: 3
	// size: (64,48)
}
