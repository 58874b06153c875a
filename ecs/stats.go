package ecs

import (
	"sort"
)

// StorageStats is a snapshot of storage occupancy.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	FreeSlots          int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one table.
type ArchetypeStats struct {
	ID             int
	Mask           Mask
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and returns a snapshot. Tables are listed in
// creation order; singleton type names are sorted.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount:     len(s.archetypes),
		TotalEntityCount:   s.alive,
		FreeSlots:          len(s.freeSlots),
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.archetypes)),
		SingletonTypes:     make([]string, 0, len(s.singletons)),
	}

	for _, archetype := range s.archetypes {
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			Mask:           archetype.mask,
			ComponentTypes: s.registry.Names(archetype.mask),
			EntityCount:    len(archetype.entities),
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
