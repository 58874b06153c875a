package debugui

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/plus3/spree/ecs"
)

// Table viewer sort columns.
const (
	SortByID = iota
	SortByComponents
	SortByComponentCount
	SortByEntityCount
)

// sortTables orders table rows by column.
func sortTables(rows []ecs.ArchetypeStats, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch column {
		case SortByID:
			less = a.ID < b.ID
		case SortByComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case SortByComponentCount:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.EntityCount < b.EntityCount
		}
		if !ascending {
			return !less
		}
		return less
	})
}

// EntityRow is one line of the entity browser.
type EntityRow struct {
	ID         ecs.EntityId
	Table      int
	Label      string
	Components []string
}

// entityRows lists every live entity in table order. Label is the entity's
// string-kinded "Name" component when it has one.
func entityRows(storage *ecs.Storage) []EntityRow {
	registry := storage.Registry()
	nameKind, hasName := registry.KindByName("Name")
	if hasName && registry.Type(nameKind).Kind() != reflect.String {
		hasName = false
	}

	rows := make([]EntityRow, 0, storage.Len())
	for _, table := range storage.GetArchetypes() {
		if table.Len() == 0 {
			continue
		}
		components := registry.Names(table.Mask())
		labelled := hasName && table.HasComponent(nameKind)
		for row, id := range table.Entities() {
			r := EntityRow{ID: id, Table: table.ID(), Components: components}
			if labelled {
				r.Label = reflect.ValueOf(table.GetComponent(row, nameKind)).Elem().String()
			}
			rows = append(rows, r)
		}
	}
	return rows
}

// filterEntities keeps rows in table (when non-nil) whose id, label or
// component names contain text, case-insensitively.
func filterEntities(rows []EntityRow, text string, table *int) []EntityRow {
	if text == "" && table == nil {
		return rows
	}
	needle := strings.ToLower(text)
	filtered := make([]EntityRow, 0, len(rows))
	for _, r := range rows {
		if table != nil && r.Table != *table {
			continue
		}
		if needle != "" &&
			!strings.Contains(entityLabel(r.ID), needle) &&
			!strings.Contains(strings.ToLower(r.Label), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(r.Components, " ")), needle) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// entityLabel formats an id as index:generation.
func entityLabel(id ecs.EntityId) string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// page returns the rows of page p and the page count.
func page[T any](rows []T, p, perPage int) ([]T, int) {
	if perPage <= 0 {
		return rows, 1
	}
	pages := max((len(rows)+perPage-1)/perPage, 1)
	p = min(max(p, 0), pages-1)
	start := p * perPage
	end := min(start+perPage, len(rows))
	return rows[start:end], pages
}

// QueryResult summarizes the tables a mask matches.
type QueryResult struct {
	Tables   []ecs.ArchetypeStats
	Entities int
}

func runQuery(storage *ecs.Storage, mask ecs.Mask) QueryResult {
	var result QueryResult
	if mask == 0 {
		return result
	}
	registry := storage.Registry()
	for table := range storage.Matching(mask) {
		result.Tables = append(result.Tables, ecs.ArchetypeStats{
			ID:             table.ID(),
			Mask:           table.Mask(),
			ComponentTypes: registry.Names(table.Mask()),
			EntityCount:    table.Len(),
		})
		result.Entities += table.Len()
	}
	return result
}

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(n int) *frameHistory {
	return &frameHistory{samples: make([]float32, max(n, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average returns the mean over the recorded samples, 0 when empty.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples[:h.filled] {
		total += s
	}
	return total / float32(h.filled)
}
