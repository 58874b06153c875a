package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spree/ecs"
)

// TableViewer lists the storage tables with their kinds and entity counts.
// Selecting a row filters the entity browser to that table.
type TableViewer struct {
	selection     *ecs.Singleton[Selection]
	sortColumn    int
	sortAscending bool
	hideEmpty     bool
}

func NewTableViewer(selection *ecs.Singleton[Selection]) *TableViewer {
	return &TableViewer{
		selection:  selection,
		sortColumn: SortByEntityCount,
	}
}

// Rows returns the table rows in the viewer's sort order.
func (tv *TableViewer) Rows(storage *ecs.Storage) []ecs.ArchetypeStats {
	rows := storage.CollectStats().ArchetypeBreakdown
	if tv.hideEmpty {
		kept := rows[:0]
		for _, r := range rows {
			if r.EntityCount > 0 {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	sortTables(rows, tv.sortColumn, tv.sortAscending)
	return rows
}

func (tv *TableViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Table Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Checkbox("Hide empty", &tv.hideEmpty)
	rows := tv.Rows(storage)

	maxEntityCount := 0
	for _, r := range rows {
		maxEntityCount = max(maxEntityCount, r.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("Tables", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Table")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Comp Count")
	imgui.TableSetupColumn("Entity Count")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		tv.sortColumn = int(spec.ColumnIndex())
		tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortTables(rows, tv.sortColumn, tv.sortAscending)
		sortSpecs.SetSpecsDirty(false)
	}

	selected := tv.selection.Get().Table
	for _, r := range rows {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		isSelected := selected != nil && *selected == r.ID
		if imgui.SelectableBoolV(fmt.Sprintf("#%d", r.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			id := r.ID
			tv.selection.Get().Table = &id
		}

		imgui.TableNextColumn()
		imgui.Text(strings.Join(r.ComponentTypes, ", "))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", len(r.ComponentTypes)))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", r.EntityCount))

		if maxEntityCount > 0 {
			barWidth := float32(r.EntityCount) / float32(maxEntityCount) * 80.0
			imgui.SameLine()
			drawList := imgui.WindowDrawList()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
		}
	}
	imgui.EndTable()
}
