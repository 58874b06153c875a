package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/spree/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	assert.NotPanics(t, empty.Finalize)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     time.Second,
		Entities:     10,
		Workers:      4,
		TotalUpdates: 60,
		Storage: ecs.StorageStats{
			ArchetypeCount:   1,
			TotalEntityCount: 10,
			ArchetypeBreakdown: []ecs.ArchetypeStats{
				{ID: 0, ComponentTypes: []string{"LocalTransform"}, EntityCount: 10},
			},
		},
		Scheduler: &ecs.SchedulerStats{
			Systems: []ecs.SystemStats{{Name: "SpinSystem", Parallel: true, TablesVisited: 60}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Workers:** 4")
	assert.Contains(t, out, "table 0 [LocalTransform]: 10")
	assert.Contains(t, out, "**SpinSystem** (parallel, 60 tables)")
}
