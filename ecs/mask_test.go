package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/spree/ecs"
	"github.com/stretchr/testify/assert"
)

func TestMaskSetOperations(t *testing.T) {
	m := ecs.MaskOf(0, 3, 63)

	assert.True(t, m.Has(0))
	assert.True(t, m.Has(63))
	assert.False(t, m.Has(1))
	assert.False(t, m.Has(64))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []ecs.Kind{0, 3, 63}, slices.Collect(m.Kinds()))
	assert.Equal(t, "{0,3,63}", m.String())

	assert.True(t, m.Contains(ecs.MaskOf(0, 63)))
	assert.True(t, m.Contains(0))
	assert.False(t, m.Contains(ecs.MaskOf(0, 1)))

	assert.Equal(t, ecs.MaskOf(0, 1, 3, 63), m.With(ecs.Kind(1).Mask()))
	assert.Equal(t, ecs.MaskOf(3), m.Without(ecs.MaskOf(0, 63, 5)))
	assert.Equal(t, "{}", ecs.Mask(0).String())
}

func TestKindMaskOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { ecs.Kind(64).Mask() })
}

func TestRegistryAssignsKindsInOrder(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	pos := ecs.RegisterComponent[Position](registry)
	vel := ecs.RegisterComponent[Velocity](registry)
	again := ecs.RegisterComponent[Position](registry)

	assert.Equal(t, ecs.Kind(0), pos)
	assert.Equal(t, ecs.Kind(1), vel)
	assert.Equal(t, pos, again)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, ecs.MaskOf(0, 1), registry.Registered())

	kind, ok := ecs.KindOf[Velocity](registry)
	assert.True(t, ok)
	assert.Equal(t, vel, kind)

	kind, ok = registry.KindByName("Position")
	assert.True(t, ok)
	assert.Equal(t, pos, kind)

	_, ok = ecs.KindOf[Health](registry)
	assert.False(t, ok)
	assert.Equal(t, []string{"Position", "Velocity"}, registry.Names(ecs.MaskOf(pos, vel)))
}

func TestRegistryRejectsReferenceTypes(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	assert.Panics(t, func() { ecs.RegisterComponent[*Position](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[map[string]int](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[func()](registry) })
}

type kindFiller[T any] struct{ v T }

func TestRegistryLimit(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	registerKinds(registry)
	assert.Equal(t, ecs.MaxKinds, registry.Len())
	assert.Equal(t, ^ecs.Mask(0), registry.Registered())
	assert.Panics(t, func() { ecs.RegisterComponent[kindFiller[[65]byte]](registry) })
}

// registerKinds registers 64 distinct types.
func registerKinds(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[kindFiller[[1]byte]](r)
	ecs.RegisterComponent[kindFiller[[2]byte]](r)
	ecs.RegisterComponent[kindFiller[[3]byte]](r)
	ecs.RegisterComponent[kindFiller[[4]byte]](r)
	ecs.RegisterComponent[kindFiller[[5]byte]](r)
	ecs.RegisterComponent[kindFiller[[6]byte]](r)
	ecs.RegisterComponent[kindFiller[[7]byte]](r)
	ecs.RegisterComponent[kindFiller[[8]byte]](r)
	ecs.RegisterComponent[kindFiller[[9]byte]](r)
	ecs.RegisterComponent[kindFiller[[10]byte]](r)
	ecs.RegisterComponent[kindFiller[[11]byte]](r)
	ecs.RegisterComponent[kindFiller[[12]byte]](r)
	ecs.RegisterComponent[kindFiller[[13]byte]](r)
	ecs.RegisterComponent[kindFiller[[14]byte]](r)
	ecs.RegisterComponent[kindFiller[[15]byte]](r)
	ecs.RegisterComponent[kindFiller[[16]byte]](r)
	ecs.RegisterComponent[kindFiller[[17]byte]](r)
	ecs.RegisterComponent[kindFiller[[18]byte]](r)
	ecs.RegisterComponent[kindFiller[[19]byte]](r)
	ecs.RegisterComponent[kindFiller[[20]byte]](r)
	ecs.RegisterComponent[kindFiller[[21]byte]](r)
	ecs.RegisterComponent[kindFiller[[22]byte]](r)
	ecs.RegisterComponent[kindFiller[[23]byte]](r)
	ecs.RegisterComponent[kindFiller[[24]byte]](r)
	ecs.RegisterComponent[kindFiller[[25]byte]](r)
	ecs.RegisterComponent[kindFiller[[26]byte]](r)
	ecs.RegisterComponent[kindFiller[[27]byte]](r)
	ecs.RegisterComponent[kindFiller[[28]byte]](r)
	ecs.RegisterComponent[kindFiller[[29]byte]](r)
	ecs.RegisterComponent[kindFiller[[30]byte]](r)
	ecs.RegisterComponent[kindFiller[[31]byte]](r)
	ecs.RegisterComponent[kindFiller[[32]byte]](r)
	ecs.RegisterComponent[kindFiller[[33]byte]](r)
	ecs.RegisterComponent[kindFiller[[34]byte]](r)
	ecs.RegisterComponent[kindFiller[[35]byte]](r)
	ecs.RegisterComponent[kindFiller[[36]byte]](r)
	ecs.RegisterComponent[kindFiller[[37]byte]](r)
	ecs.RegisterComponent[kindFiller[[38]byte]](r)
	ecs.RegisterComponent[kindFiller[[39]byte]](r)
	ecs.RegisterComponent[kindFiller[[40]byte]](r)
	ecs.RegisterComponent[kindFiller[[41]byte]](r)
	ecs.RegisterComponent[kindFiller[[42]byte]](r)
	ecs.RegisterComponent[kindFiller[[43]byte]](r)
	ecs.RegisterComponent[kindFiller[[44]byte]](r)
	ecs.RegisterComponent[kindFiller[[45]byte]](r)
	ecs.RegisterComponent[kindFiller[[46]byte]](r)
	ecs.RegisterComponent[kindFiller[[47]byte]](r)
	ecs.RegisterComponent[kindFiller[[48]byte]](r)
	ecs.RegisterComponent[kindFiller[[49]byte]](r)
	ecs.RegisterComponent[kindFiller[[50]byte]](r)
	ecs.RegisterComponent[kindFiller[[51]byte]](r)
	ecs.RegisterComponent[kindFiller[[52]byte]](r)
	ecs.RegisterComponent[kindFiller[[53]byte]](r)
	ecs.RegisterComponent[kindFiller[[54]byte]](r)
	ecs.RegisterComponent[kindFiller[[55]byte]](r)
	ecs.RegisterComponent[kindFiller[[56]byte]](r)
	ecs.RegisterComponent[kindFiller[[57]byte]](r)
	ecs.RegisterComponent[kindFiller[[58]byte]](r)
	ecs.RegisterComponent[kindFiller[[59]byte]](r)
	ecs.RegisterComponent[kindFiller[[60]byte]](r)
	ecs.RegisterComponent[kindFiller[[61]byte]](r)
	ecs.RegisterComponent[kindFiller[[62]byte]](r)
	ecs.RegisterComponent[kindFiller[[63]byte]](r)
	ecs.RegisterComponent[kindFiller[[64]byte]](r)
}
