package ecs

import "reflect"

// iComponentStorage is a type-erased column of one component kind inside a table.
// Row i of every column in a table describes the same entity.
type iComponentStorage interface {
	AppendDefault()
	AppendFrom(src iComponentStorage, row int)
	AppendValue(item any) bool
	SwapRemove(row int)
	Get(row int) any
	Set(row int, item any) bool
	Len() int
	Type() reflect.Type
}
