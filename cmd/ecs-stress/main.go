package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/spree/ecs"
	"github.com/plus3/spree/world"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Scheduler worker count.")
	churn := flag.Int("churn", 50, "Entities despawned and respawned per tick through deferred commands.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting ECS stress test...")

	// 1. World with the built-in systems plus the stress systems
	w := world.New(ecs.WithWorkers(*workers))
	w.Scheduler.Register(&SpinSystem{Speed: 1.5})
	w.Scheduler.Register(&TintSystem{})
	w.Scheduler.Register(&ChurnSystem{PerTick: *churn, rng: rand.New(rand.NewPCG(1, 2))})

	// 2. Populate storage
	log.Printf("Populating storage with %d entities...\n", *entityCount)
	rng := rand.New(rand.NewPCG(3, 4))
	var roots []ecs.EntityId
	for range *entityCount {
		roots = SpawnRandomEntity(w, rng, roots)
	}
	log.Printf("Population complete: %d tables.", len(w.Storage.GetArchetypes()))

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Workers:        w.Scheduler.Workers(),
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := w.Update(float32(deltaTime.Seconds())); err != nil {
				report.FlushErrors++
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Storage = w.Storage.CollectStats()
	report.Scheduler = w.Scheduler.GetStats()

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// SpawnRandomEntity spawns a transform plus a random mix of the optional kinds.
// One in four entities is parented to an earlier root.
func SpawnRandomEntity(w *world.World, rng *rand.Rand, roots []ecs.EntityId) []ecs.EntityId {
	local := world.DefaultLocalTransform()
	local.Translation = mgl32.Vec3{rng.Float32()*100 - 50, rng.Float32()*100 - 50, rng.Float32()*100 - 50}
	components := []any{local}

	if rng.IntN(2) == 0 {
		components = append(components, world.Color{rng.Float32(), rng.Float32(), rng.Float32(), 1})
	}
	if rng.IntN(3) == 0 {
		components = append(components, world.Name(fmt.Sprintf("entity-%d", len(roots))))
	}
	if rng.IntN(16) == 0 {
		components = append(components, world.Player{Slot: uint8(rng.IntN(4))})
	}
	parented := len(roots) > 0 && rng.IntN(4) == 0
	if parented {
		components = append(components, world.Parent{Entity: roots[rng.IntN(len(roots))]})
	}

	id := w.Spawn(components...)
	if !parented {
		roots = append(roots, id)
	}
	return roots
}
