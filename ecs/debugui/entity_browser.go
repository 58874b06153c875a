package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spree/ecs"
)

// EntityBrowser lists live entities, searchable by id, name and component
// names, paged. Clicking a row selects the entity for the inspector.
type EntityBrowser struct {
	selection     *ecs.Singleton[Selection]
	filterText    string
	perPage       int
	currentPage   int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(selection *ecs.Singleton[Selection], perPage int) *EntityBrowser {
	return &EntityBrowser{
		selection:     selection,
		perPage:       perPage,
		sortAscending: true,
	}
}

// SetFilter replaces the search text and returns to the first page.
func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Rows returns the filtered, sorted rows across all pages.
func (eb *EntityBrowser) Rows(storage *ecs.Storage) []EntityRow {
	rows := filterEntities(entityRows(storage), eb.filterText, eb.selection.Get().Table)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch eb.sortColumn {
		case 1:
			less = a.Table < b.Table
		case 2:
			less = a.Label < b.Label
		case 3:
			less = strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		default:
			less = a.ID.Index() < b.ID.Index()
		}
		if !eb.sortAscending {
			return !less
		}
		return less
	})
	return rows
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	filter := eb.filterText
	if imgui.InputTextWithHint("##search", "Search...", &filter, imgui.InputTextFlagsNone, nil) {
		eb.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
		eb.selection.Get().Table = nil
	}
	if table := eb.selection.Get().Table; table != nil {
		imgui.Text(fmt.Sprintf("Table #%d only", *table))
	}

	rows := eb.Rows(storage)
	visible, pages := page(rows, eb.currentPage, eb.perPage)
	eb.currentPage = min(eb.currentPage, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, -30), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Table")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		selected := eb.selection.Get().Entity
		for _, r := range visible {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entityLabel(r.ID), selected == r.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selection.Get().Entity = r.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("#%d", r.Table))

			imgui.TableNextColumn()
			imgui.Text(r.Label)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(r.Components, ", "))
		}
		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, pages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < pages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}
}
