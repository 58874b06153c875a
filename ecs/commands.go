package ecs

import (
	"errors"
	"fmt"
	"sync"
)

// Commands buffers structural ECS operations issued while systems run. The
// buffer is safe for concurrent use from parallel table systems and is applied
// single-threaded once every system of the tick has finished.
type Commands struct {
	mu      sync.Mutex
	spawns  []spawnCommand
	deletes []EntityId
	adds    []maskCommand
	sets    []setCommand
	removes []maskCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	mask       Mask
	components []any
}

type maskCommand struct {
	entity EntityId
	mask   Mask
}

type setCommand struct {
	entity    EntityId
	kind      Kind
	hasKind   bool
	component any
}

// Defer queues a function to run after every other queued operation.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	c.defers = append(c.defers, fn)
	c.mu.Unlock()
}

// Spawn queues an entity spawn with the given component values.
func (c *Commands) Spawn(components ...any) {
	c.mu.Lock()
	c.spawns = append(c.spawns, spawnCommand{components: components})
	c.mu.Unlock()
}

// SpawnMask queues the spawn of one entity with default values for mask.
func (c *Commands) SpawnMask(mask Mask) {
	c.mu.Lock()
	c.spawns = append(c.spawns, spawnCommand{mask: mask})
	c.mu.Unlock()
}

// Delete queues an entity despawn. Later commands for the same entity in this
// batch are dropped.
func (c *Commands) Delete(entity EntityId) {
	c.mu.Lock()
	c.deletes = append(c.deletes, entity)
	c.mu.Unlock()
}

// AddComponents queues the addition of default values for mask.
func (c *Commands) AddComponents(entity EntityId, mask Mask) {
	c.mu.Lock()
	c.adds = append(c.adds, maskCommand{entity: entity, mask: mask})
	c.mu.Unlock()
}

// AddComponent queues an upsert of a component given by value.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.mu.Lock()
	c.sets = append(c.sets, setCommand{entity: entity, component: component})
	c.mu.Unlock()
}

// SetComponent queues an upsert of the given kind.
func (c *Commands) SetComponent(entity EntityId, kind Kind, component any) {
	c.mu.Lock()
	c.sets = append(c.sets, setCommand{entity: entity, kind: kind, hasKind: true, component: component})
	c.mu.Unlock()
}

// RemoveComponents queues the removal of every kind in mask.
func (c *Commands) RemoveComponents(entity EntityId, mask Mask) {
	c.mu.Lock()
	c.removes = append(c.removes, maskCommand{entity: entity, mask: mask})
	c.mu.Unlock()
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.sets) + len(c.removes) + len(c.defers)
}

// Flush applies the queued operations to storage in order (despawns, removes,
// adds, sets, spawns, defers) and resets the buffer. Operations queued while the
// batch is applied, for example from a deferred function, are applied in a
// following pass of the same Flush. Failed removes and sets are collected into
// the returned error; the remaining operations still run.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error
	for {
		batch := c.take()
		if batch.empty() {
			return errors.Join(errs...)
		}
		errs = append(errs, batch.apply(storage)...)
	}
}

// commandBatch is the set of operations taken from the buffer by one pass of
// Flush.
type commandBatch struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []maskCommand
	sets    []setCommand
	removes []maskCommand
	defers  []func()
}

// take moves the queued operations out of the buffer.
func (c *Commands) take() commandBatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := commandBatch{
		spawns:  c.spawns,
		deletes: c.deletes,
		adds:    c.adds,
		sets:    c.sets,
		removes: c.removes,
		defers:  c.defers,
	}
	c.spawns, c.deletes, c.adds, c.sets, c.removes, c.defers = nil, nil, nil, nil, nil, nil
	return b
}

func (b *commandBatch) empty() bool {
	return len(b.spawns)+len(b.deletes)+len(b.adds)+len(b.sets)+len(b.removes)+len(b.defers) == 0
}

func (b *commandBatch) apply(storage *Storage) []error {
	var errs []error
	deleted := make(map[EntityId]bool, len(b.deletes))

	for _, id := range b.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range b.removes {
		if deleted[cmd.entity] {
			continue
		}
		if err := storage.RemoveComponents(cmd.entity, cmd.mask); err != nil {
			errs = append(errs, fmt.Errorf("remove %s from entity %d: %w", cmd.mask, cmd.entity, err))
		}
	}

	for _, cmd := range b.adds {
		if !deleted[cmd.entity] {
			storage.AddComponents(cmd.entity, cmd.mask)
		}
	}

	for _, cmd := range b.sets {
		if deleted[cmd.entity] {
			continue
		}
		var ok bool
		if cmd.hasKind {
			ok = storage.SetComponent(cmd.entity, cmd.kind, cmd.component)
		} else {
			ok = storage.AddComponent(cmd.entity, cmd.component)
		}
		if !ok && storage.Alive(cmd.entity) {
			errs = append(errs, fmt.Errorf("set %T on entity %d: invalid component", cmd.component, cmd.entity))
		}
	}

	for _, cmd := range b.spawns {
		if cmd.components != nil {
			storage.SpawnComponents(cmd.components...)
		} else {
			storage.Spawn(cmd.mask, 1)
		}
	}

	for _, fn := range b.defers {
		fn()
	}
	return errs
}
