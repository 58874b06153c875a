package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query fields
// for accessing entities, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// TableSystem is a System whose per-table work may run in parallel. The
// scheduler calls Execute once, serially, then ExecuteTable once per non-empty
// table whose mask contains Requires(), spread over the worker pool. A table is
// never handed to two goroutines at once.
//
// ExecuteTable must not make structural changes; queue them on frame.Commands.
type TableSystem interface {
	System
	Requires() Mask
	ExecuteTable(frame *UpdateFrame, table *Archetype)
}
