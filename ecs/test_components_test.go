package ecs_test

import "github.com/plus3/spree/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type Score int32

type Inventory struct {
	Items []string
}

// testKinds holds the kinds assigned by newTestRegistry.
type testKinds struct {
	Position, Velocity, Name, Health, Player, Score, Inventory ecs.Kind
}

var kinds testKinds

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	kinds = testKinds{
		Position:  ecs.RegisterComponent[Position](registry),
		Velocity:  ecs.RegisterComponent[Velocity](registry),
		Name:      ecs.RegisterComponent[Name](registry, Name{Value: "unnamed"}),
		Health:    ecs.RegisterComponent[Health](registry, Health{Current: 100, Max: 100}),
		Player:    ecs.RegisterComponent[PlayerController](registry),
		Score:     ecs.RegisterComponent[Score](registry),
		Inventory: ecs.RegisterComponent[Inventory](registry),
	}
	return registry
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}

// tableInvariantsHold checks that every column of every table has the same
// length as its entity column and that each live entity sits in exactly one table.
func tableInvariantsHold(storage *ecs.Storage) bool {
	seen := make(map[ecs.EntityId]int)
	for _, table := range storage.GetArchetypes() {
		for _, kind := range table.Kinds() {
			for row := range table.Len() {
				if table.GetComponent(row, kind) == nil {
					return false
				}
			}
			if table.GetComponent(table.Len(), kind) != nil {
				return false
			}
		}
		for _, id := range table.Entities() {
			seen[id]++
		}
	}
	if len(seen) != storage.Len() {
		return false
	}
	for id, count := range seen {
		if count != 1 || !storage.Alive(id) {
			return false
		}
	}
	return true
}
