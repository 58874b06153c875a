package ecs

import (
	"context"
	"reflect"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	FlushErrors     int64
	Workers         int
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Parallel       bool
	ExecutionCount int64
	TablesVisited  int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	parallel       bool
	executionCount int64
	tablesVisited  int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	table   TableSystem
	queries []queryExecutor
	stats   *systemStatsInternal
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithWorkers bounds the number of tables processed concurrently by a
// TableSystem. Values below 1 are treated as 1, which runs tables sequentially.
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		s.workers = max(n, 1)
	}
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	storage     *Storage
	systems     []*registeredSystem
	workers     int
	flushErrors int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the parallel table limit.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Register adds a system to the scheduler and initializes its Query and
// Singleton fields.
func (s *Scheduler) Register(system System) {
	entry := &registeredSystem{
		system:  system,
		queries: s.initializeFields(system),
	}
	entry.table, _ = system.(TableSystem)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	entry.stats = &systemStatsInternal{
		name:        systemType.Name(),
		parallel:    entry.table != nil,
		minDuration: time.Duration(1<<63 - 1),
	}

	s.systems = append(s.systems, entry)
}

func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + fieldType.Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			if q, ok := field.Addr().Interface().(queryExecutor); ok {
				queries = append(queries, q)
			}
		}
	}

	return queries
}

// Once executes all registered systems once with the given delta time, then
// flushes the frame's commands. The returned error reports commands that could
// not be applied.
func (s *Scheduler) Once(dt float64) error {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.systems {
		for _, q := range entry.queries {
			q.Execute()
		}

		start := time.Now()
		entry.system.Execute(frame)
		if entry.table != nil {
			entry.stats.tablesVisited += int64(s.runTables(frame, entry.table))
		}
		entry.stats.record(time.Since(start))
	}

	err := frame.Commands.Flush(s.storage)
	if err != nil {
		s.flushErrors++
	}
	return err
}

// runTables fans ExecuteTable out over the matching non-empty tables and waits
// for all of them. Structural storage calls panic until it returns.
func (s *Scheduler) runTables(frame *UpdateFrame, system TableSystem) int {
	s.storage.parallel.Add(1)
	defer s.storage.parallel.Add(-1)

	var g errgroup.Group
	g.SetLimit(s.workers)

	visited := 0
	for table := range s.storage.Matching(system.Requires()) {
		if table.Len() == 0 {
			continue
		}
		visited++
		g.Go(func() error {
			table.token.Lock()
			defer table.token.Unlock()
			system.ExecuteTable(frame, table)
			return nil
		})
	}
	_ = g.Wait()
	return visited
}

func (st *systemStatsInternal) record(duration time.Duration) {
	st.executionCount++
	st.lastDuration = duration
	st.totalDuration += duration
	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			_ = s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		FlushErrors: s.flushErrors,
		Workers:     s.workers,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Parallel:       internal.parallel,
			ExecutionCount: internal.executionCount,
			TablesVisited:  internal.tablesVisited,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
