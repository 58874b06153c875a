package ecs_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/spree/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Movers ecs.Query[struct {
		Position *Position
		Velocity *Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for mover := range s.Movers.Values() {
		mover.Position.X += mover.Velocity.DX * float32(frame.DeltaTime)
		mover.Position.Y += mover.Velocity.DY * float32(frame.DeltaTime)
	}
}

type ScoreSystem struct {
	Total ecs.Singleton[Score]
	Seen  ecs.Query[struct{ Health *Health }]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	for range s.Seen.Values() {
		*s.Total.Get() += 1
	}
}

func TestSchedulerInitializesFields(t *testing.T) {
	storage := newTestStorage()
	ecs.NewSingleton(storage, Score(0))
	storage.SpawnComponents(Position{}, Velocity{DX: 10, DY: 20})
	storage.SpawnComponents(Health{})
	storage.SpawnComponents(Health{}, Position{})

	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	score := &ScoreSystem{}
	scheduler.Register(movement)
	scheduler.Register(score)

	require.NoError(t, scheduler.Once(0.5))
	require.NoError(t, scheduler.Once(0.5))

	for _, mover := range movement.Movers.Iter() {
		assert.Equal(t, float32(10), mover.Position.X)
		assert.Equal(t, float32(20), mover.Position.Y)
	}
	assert.Equal(t, Score(4), *score.Total.Get())
}

// integrateSystem moves positions table by table.
type integrateSystem struct {
	calls   atomic.Int32
	active  sync.Map
	overlap atomic.Bool
	peak    atomic.Int32
	running atomic.Int32
}

func (s *integrateSystem) Execute(frame *ecs.UpdateFrame) {}

func (s *integrateSystem) Requires() ecs.Mask {
	return ecs.MaskOf(kinds.Position, kinds.Velocity)
}

func (s *integrateSystem) ExecuteTable(frame *ecs.UpdateFrame, table *ecs.Archetype) {
	if _, loaded := s.active.LoadOrStore(table.ID(), true); loaded {
		s.overlap.Store(true)
	}
	defer s.active.Delete(table.ID())

	n := s.running.Add(1)
	defer s.running.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	s.calls.Add(1)
	positions := ecs.Column[Position](table, kinds.Position)
	velocities := ecs.Column[Velocity](table, kinds.Velocity)
	for i := range positions {
		positions[i].X += velocities[i].DX
	}
	time.Sleep(2 * time.Millisecond)
}

func spawnSpreadTables(storage *ecs.Storage) {
	base := ecs.MaskOf(kinds.Position, kinds.Velocity)
	extras := []ecs.Mask{0, kinds.Name.Mask(), kinds.Health.Mask(), kinds.Score.Mask(), kinds.Inventory.Mask(), kinds.Player.Mask()}
	for _, extra := range extras {
		for _, id := range storage.Spawn(base|extra, 10) {
			storage.SetComponent(id, kinds.Velocity, Velocity{DX: 1})
		}
	}
	// matches nothing
	storage.Spawn(kinds.Position.Mask(), 5)
	// empty table
	empty := storage.Spawn(base|ecs.MaskOf(kinds.Name, kinds.Health), 1)
	storage.Despawn(empty[0])
}

func TestTableSystemRunsTablesInParallel(t *testing.T) {
	storage := newTestStorage()
	spawnSpreadTables(storage)

	scheduler := ecs.NewScheduler(storage, ecs.WithWorkers(4))
	sys := &integrateSystem{}
	scheduler.Register(sys)

	require.NoError(t, scheduler.Once(0.016))

	assert.Equal(t, int32(6), sys.calls.Load(), "one call per non-empty matching table")
	assert.False(t, sys.overlap.Load(), "a table must never be entered twice at once")
	assert.Greater(t, sys.peak.Load(), int32(1))
	assert.LessOrEqual(t, sys.peak.Load(), int32(4))

	for id := range storage.Entities(kinds.Velocity.Mask()) {
		assert.Equal(t, float32(1), ecs.Get[Position](storage, id).X)
	}

	stats := scheduler.GetStats()
	assert.True(t, stats.Systems[0].Parallel)
	assert.Equal(t, int64(6), stats.Systems[0].TablesVisited)
	assert.Equal(t, 4, stats.Workers)
}

func TestSingleWorkerRunsSequentially(t *testing.T) {
	storage := newTestStorage()
	spawnSpreadTables(storage)

	scheduler := ecs.NewScheduler(storage, ecs.WithWorkers(0))
	sys := &integrateSystem{}
	scheduler.Register(sys)

	require.NoError(t, scheduler.Once(0.016))
	assert.Equal(t, 1, scheduler.Workers())
	assert.Equal(t, int32(1), sys.peak.Load())
	assert.Equal(t, int32(6), sys.calls.Load())
}

func TestTwoTableSystemsNeverShareATable(t *testing.T) {
	storage := newTestStorage()
	spawnSpreadTables(storage)

	scheduler := ecs.NewScheduler(storage, ecs.WithWorkers(8))
	shared := &integrateSystem{}
	scheduler.Register(shared)
	scheduler.Register(shared)

	require.NoError(t, scheduler.Once(0.016))
	assert.False(t, shared.overlap.Load())
	assert.Equal(t, int32(12), shared.calls.Load())
}

type countingSystem struct {
	count atomic.Int32
	sleep time.Duration
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.count.Add(1)
	if s.sleep > 0 {
		time.Sleep(s.sleep)
	}
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestStorage())

	stats := scheduler.GetStats()
	assert.Zero(t, stats.SystemCount)
	assert.Zero(t, stats.TotalExecutions)

	sys1 := &countingSystem{sleep: time.Millisecond}
	sys2 := &countingSystem{sleep: 2 * time.Millisecond}
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	for range 3 {
		require.NoError(t, scheduler.Once(0.016))
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)

	for _, sysStats := range stats.Systems {
		assert.Equal(t, "countingSystem", sysStats.Name)
		assert.False(t, sysStats.Parallel)
		assert.Equal(t, int64(3), sysStats.ExecutionCount)
		assert.NotZero(t, sysStats.MinDuration)
		assert.NotZero(t, sysStats.LastDuration)
		assert.LessOrEqual(t, sysStats.MinDuration, sysStats.AvgDuration)
		assert.LessOrEqual(t, sysStats.AvgDuration, sysStats.MaxDuration)
	}
	assert.Equal(t, int32(3), sys1.count.Load())
	assert.Equal(t, int32(3), sys2.count.Load())
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestStorage())
	sys := &countingSystem{}
	scheduler.Register(sys)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Greater(t, sys.count.Load(), int32(0))
}
