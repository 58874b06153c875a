package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/ecs/debugui"
	debugui_ebiten "github.com/plus3/spree/ecs/debugui/ebiten"
)

type Position struct{ X, Y float32 }

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler *ecs.Scheduler
	imgui     *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems issue imgui calls, so the tick runs inside the imgui frame
	return g.imgui.Frame(func() error {
		return g.scheduler.Once(1.0 / 60.0)
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imgui.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	// Inspector windows plus the system that renders every ImguiItem
	debugui.Install(storage, scheduler)

	storage.SpawnComponents(Position{X: 1, Y: 2})
	storage.SpawnComponents(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	if err := ebiten.RunGame(&Game{scheduler: scheduler, imgui: backend}); err != nil {
		panic(err)
	}
}
