package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/spree/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{0, 1},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,generation=%d", tt.index, tt.generation), func(t *testing.T) {
			id := ecs.NewEntityId(tt.index, tt.generation)
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.generation, id.Generation())
		})
	}
}

func TestSpawnReturnsIdsInCreationOrder(t *testing.T) {
	storage := newTestStorage()

	ids := storage.Spawn(ecs.MaskOf(kinds.Position, kinds.Velocity), 3)
	require.Len(t, ids, 3)
	for i, id := range ids {
		assert.Equal(t, uint32(i), id.Index())
		assert.Equal(t, uint32(1), id.Generation())
		assert.True(t, storage.Alive(id))
	}

	table := storage.GetArchetype(ecs.MaskOf(kinds.Position, kinds.Velocity))
	require.NotNil(t, table)
	assert.Equal(t, ids, table.Entities())
	assert.Equal(t, 3, storage.Len())
}

func TestSpawnZeroCount(t *testing.T) {
	storage := newTestStorage()
	assert.Empty(t, storage.Spawn(kinds.Position.Mask(), 0))
	assert.Empty(t, storage.GetArchetypes())
}

func TestSpawnEmptyMask(t *testing.T) {
	storage := newTestStorage()

	ids := storage.Spawn(0, 2)
	require.Len(t, ids, 2)

	mask, ok := storage.MaskOf(ids[0])
	require.True(t, ok)
	assert.Equal(t, ecs.Mask(0), mask)
	assert.Nil(t, storage.GetComponent(ids[0], kinds.Position))
}

func TestSpawnUnregisteredKindPanics(t *testing.T) {
	storage := newTestStorage()
	assert.Panics(t, func() {
		storage.Spawn(ecs.Kind(40).Mask(), 1)
	})
}

func TestGetComponentDefaultsAndAbsentKinds(t *testing.T) {
	storage := newTestStorage()
	mask := ecs.MaskOf(kinds.Name, kinds.Health)
	id := storage.Spawn(mask, 1)[0]

	for _, kind := range []ecs.Kind{kinds.Position, kinds.Velocity, kinds.Player, kinds.Score, kinds.Inventory} {
		assert.Nil(t, storage.GetComponent(id, kind), "kind %d not in spawn mask", kind)
	}

	name := ecs.Get[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "unnamed", name.Value)

	health := storage.GetComponent(id, kinds.Health).(*Health)
	assert.Equal(t, Health{Current: 100, Max: 100}, *health)

	assert.Nil(t, ecs.Get[Position](storage, id))
}

func TestSpawnComponentsOverwritesDefaults(t *testing.T) {
	storage := newTestStorage()

	id := storage.SpawnComponents(Position{X: 3, Y: 4}, &Name{Value: "Test Entity"})

	mask, ok := storage.MaskOf(id)
	require.True(t, ok)
	assert.Equal(t, ecs.MaskOf(kinds.Position, kinds.Name), mask)
	assert.Equal(t, Position{X: 3, Y: 4}, *ecs.Get[Position](storage, id))
	assert.Equal(t, "Test Entity", ecs.Get[Name](storage, id).Value)
}

func TestGetComponentReturnsLivePointer(t *testing.T) {
	storage := newTestStorage()
	id := storage.SpawnComponents(Position{X: 1, Y: 1})

	ecs.Get[Position](storage, id).X = 42
	assert.Equal(t, float32(42), ecs.Get[Position](storage, id).X)
}

func TestDespawnInvalidatesIdAcrossSlotReuse(t *testing.T) {
	storage := newTestStorage()
	mask := ecs.MaskOf(kinds.Position, kinds.Health)

	id := storage.Spawn(mask, 1)[0]
	storage.Despawn(id)

	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.GetComponent(id, kinds.Position))
	assert.Nil(t, ecs.Get[Health](storage, id))

	reused := storage.Spawn(mask, 1)[0]
	assert.Equal(t, id.Index(), reused.Index(), "slot should be reused")
	assert.Equal(t, id.Generation()+1, reused.Generation())

	assert.Nil(t, storage.GetComponent(id, kinds.Position), "stale id must stay invalid")
	assert.NotNil(t, storage.GetComponent(reused, kinds.Position))
	assert.False(t, storage.SetComponent(id, kinds.Position, Position{X: 9}))
	assert.Equal(t, Position{}, *ecs.Get[Position](storage, reused))
}

func TestDespawnDeadIdIsNoop(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(kinds.Position.Mask(), 1)[0]

	storage.Despawn(id)
	storage.Despawn(id)
	storage.Despawn(ecs.EntityId(0))
	storage.Despawn(ecs.NewEntityId(999, 1))

	assert.Equal(t, 0, storage.Len())
}

func TestDespawnPatchesMovedRow(t *testing.T) {
	storage := newTestStorage()
	ids := make([]ecs.EntityId, 4)
	for i := range ids {
		ids[i] = storage.SpawnComponents(Position{X: float32(i)})
	}

	storage.Despawn(ids[0])

	for i, id := range ids[1:] {
		pos := ecs.Get[Position](storage, id)
		require.NotNil(t, pos)
		assert.Equal(t, float32(i+1), pos.X)
	}
	assert.True(t, tableInvariantsHold(storage))
}

func TestAddThenRemoveRestoresTableAndValues(t *testing.T) {
	storage := newTestStorage()
	original := ecs.MaskOf(kinds.Position, kinds.Name)

	id := storage.Spawn(original, 1)[0]
	other := storage.Spawn(original, 1)[0]
	require.True(t, storage.SetComponent(id, kinds.Position, Position{X: 1.5, Y: -2.25}))
	require.True(t, storage.SetComponent(id, kinds.Name, Name{Value: "keep me"}))

	originalTable := storage.GetArchetype(original)

	require.True(t, storage.AddComponents(id, kinds.Velocity.Mask()))
	mask, _ := storage.MaskOf(id)
	assert.Equal(t, original|kinds.Velocity.Mask(), mask)
	assert.Equal(t, Velocity{}, *ecs.Get[Velocity](storage, id))

	require.NoError(t, storage.RemoveComponents(id, kinds.Velocity.Mask()))

	mask, _ = storage.MaskOf(id)
	assert.Equal(t, original, mask)
	assert.Contains(t, originalTable.Entities(), id)
	assert.Equal(t, Position{X: 1.5, Y: -2.25}, *ecs.Get[Position](storage, id))
	assert.Equal(t, Name{Value: "keep me"}, *ecs.Get[Name](storage, id))
	assert.Equal(t, "unnamed", ecs.Get[Name](storage, other).Value)
	assert.True(t, tableInvariantsHold(storage))
}

func TestAddComponentsKeepsExistingValues(t *testing.T) {
	storage := newTestStorage()
	id := storage.SpawnComponents(Health{Current: 5, Max: 10})

	require.True(t, storage.AddComponents(id, ecs.MaskOf(kinds.Health, kinds.Score)))
	assert.Equal(t, Health{Current: 5, Max: 10}, *ecs.Get[Health](storage, id))
	assert.Equal(t, Score(0), *ecs.Get[Score](storage, id))
}

func TestRemoveAbsentComponentIsAnError(t *testing.T) {
	storage := newTestStorage()
	id := storage.SpawnComponents(Position{X: 7})

	err := storage.RemoveComponents(id, ecs.MaskOf(kinds.Position, kinds.Velocity))
	require.ErrorIs(t, err, ecs.ErrComponentNotPresent)

	mask, _ := storage.MaskOf(id)
	assert.Equal(t, kinds.Position.Mask(), mask, "failed remove must not change the entity")
	assert.Equal(t, float32(7), ecs.Get[Position](storage, id).X)
}

func TestRemoveFromDeadEntityIsSilent(t *testing.T) {
	storage := newTestStorage()
	id := storage.SpawnComponents(Position{})
	storage.Despawn(id)

	assert.NoError(t, storage.RemoveComponents(id, kinds.Position.Mask()))
	assert.NoError(t, storage.RemoveComponent(id, kinds.Velocity))
}

func TestSetComponentUpserts(t *testing.T) {
	storage := newTestStorage()
	id := storage.SpawnComponents(Position{X: 1})

	assert.True(t, storage.SetComponent(id, kinds.Velocity, Velocity{DX: 2}))
	assert.True(t, storage.SetComponent(id, kinds.Position, &Position{X: 3}))
	assert.Equal(t, float32(2), ecs.Get[Velocity](storage, id).DX)
	assert.Equal(t, float32(3), ecs.Get[Position](storage, id).X)

	assert.False(t, storage.SetComponent(id, kinds.Position, Velocity{}), "wrong type")
	assert.False(t, storage.SetComponent(id, kinds.Position, nil))
	assert.True(t, tableInvariantsHold(storage))
}

func TestSetComponentRejectsNilPointer(t *testing.T) {
	storage := newTestStorage()
	id := storage.SpawnComponents(Position{X: 1})

	assert.NotPanics(t, func() {
		assert.False(t, storage.SetComponent(id, kinds.Position, (*Position)(nil)))
		assert.False(t, storage.SetComponent(id, kinds.Velocity, (*Velocity)(nil)))
		assert.False(t, storage.AddComponent(id, (*Velocity)(nil)))
	})
	assert.Equal(t, float32(1), ecs.Get[Position](storage, id).X)
	mask, ok := storage.MaskOf(id)
	require.True(t, ok)
	assert.Equal(t, kinds.Position.Mask(), mask, "a rejected value must not move the entity")

	spawned := storage.SpawnComponents((*Position)(nil))
	assert.Equal(t, Position{}, *ecs.Get[Position](storage, spawned))
	assert.True(t, tableInvariantsHold(storage))
}

func TestQueryFirstEntityUsesTableCreationOrder(t *testing.T) {
	storage := newTestStorage()

	_, ok := storage.QueryFirstEntity(kinds.Position.Mask())
	assert.False(t, ok)

	wide := storage.Spawn(ecs.MaskOf(kinds.Position, kinds.Velocity, kinds.Name), 1)[0]
	storage.Spawn(kinds.Position.Mask(), 2)

	first, ok := storage.QueryFirstEntity(kinds.Position.Mask())
	require.True(t, ok)
	assert.Equal(t, wide, first)

	_, ok = storage.QueryFirstEntity(ecs.MaskOf(kinds.Position, kinds.Health))
	assert.False(t, ok)
}

func TestQueryFirstEntitySkipsEmptyTables(t *testing.T) {
	storage := newTestStorage()
	gone := storage.Spawn(kinds.Position.Mask(), 1)[0]
	kept := storage.Spawn(ecs.MaskOf(kinds.Position, kinds.Score), 1)[0]
	storage.Despawn(gone)

	first, ok := storage.QueryFirstEntity(kinds.Position.Mask())
	require.True(t, ok)
	assert.Equal(t, kept, first)
}

func TestMatchingAndEntities(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(kinds.Position.Mask(), 2)
	storage.Spawn(ecs.MaskOf(kinds.Position, kinds.Velocity), 3)
	storage.Spawn(kinds.Velocity.Mask(), 4)

	var tables int
	for range storage.Matching(kinds.Position.Mask()) {
		tables++
	}
	assert.Equal(t, 2, tables)

	var entities int
	for range storage.Entities(kinds.Velocity.Mask()) {
		entities++
	}
	assert.Equal(t, 7, entities)
}

func TestStructuralSequencesKeepInvariants(t *testing.T) {
	storage := newTestStorage()
	all := []ecs.Kind{kinds.Position, kinds.Velocity, kinds.Name, kinds.Health, kinds.Score}

	var live []ecs.EntityId
	for i := range 200 {
		switch i % 5 {
		case 0, 1:
			live = append(live, storage.Spawn(ecs.MaskOf(all[i%len(all)], all[(i/3)%len(all)]), 1)...)
		case 2:
			if len(live) > 0 {
				storage.AddComponents(live[i%len(live)], all[(i/2)%len(all)].Mask())
			}
		case 3:
			if len(live) > 0 {
				_ = storage.RemoveComponents(live[(i*7)%len(live)], all[i%len(all)].Mask())
			}
		case 4:
			if len(live) > 0 {
				victim := (i * 13) % len(live)
				storage.Despawn(live[victim])
				live = append(live[:victim], live[victim+1:]...)
			}
		}
		require.True(t, tableInvariantsHold(storage), "step %d", i)
	}
	assert.Equal(t, len(live), storage.Len())
}

func TestStructuralChangeDuringParallelPhasePanics(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(kinds.Position.Mask(), 1)

	scheduler := ecs.NewScheduler(storage, ecs.WithWorkers(2))
	sys := &structuralTableSystem{}
	scheduler.Register(sys)

	_ = scheduler.Once(0.016)
	require.NotNil(t, sys.recovered)
	assert.Contains(t, fmt.Sprint(sys.recovered), "UpdateFrame.Commands")
}

type structuralTableSystem struct {
	recovered any
}

func (s *structuralTableSystem) Execute(frame *ecs.UpdateFrame) {}

func (s *structuralTableSystem) Requires() ecs.Mask { return kinds.Position.Mask() }

func (s *structuralTableSystem) ExecuteTable(frame *ecs.UpdateFrame, table *ecs.Archetype) {
	defer func() { s.recovered = recover() }()
	frame.Storage.Spawn(kinds.Velocity.Mask(), 1)
}

func TestSingletons(t *testing.T) {
	storage := newTestStorage()

	counter := ecs.NewSingleton(storage, Score(3))
	require.True(t, counter.Exists())
	assert.Equal(t, Score(3), *counter.Get())

	*counter.Get() = 10
	again := ecs.NewSingleton[Score](storage, Score(99))
	assert.Equal(t, Score(10), *again.Get(), "existing singleton is not re-initialized")

	var late ecs.Singleton[Health]
	late.Init(storage)
	assert.False(t, late.Exists())
	storage.AddSingleton(Health{Current: 1})
	assert.Equal(t, 1, late.Get().Current)
}

func TestCollectStats(t *testing.T) {
	storage := newTestStorage()

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(ecs.MaskOf(kinds.Position, kinds.Name), 2)
	storage.Spawn(ecs.MaskOf(kinds.Velocity, kinds.Name), 1)
	ecs.NewSingleton(storage, Score(1))
	ecs.NewSingleton(storage, Health{})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"Position", "Name"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
	assert.Equal(t, []string{"ecs_test.Health", "ecs_test.Score"}, stats.SingletonTypes)
}
