package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spree/ecs"
)

// QueryDebugger builds a mask from checked kinds and shows which tables and
// how many entities a query with that mask would visit.
type QueryDebugger struct {
	mask ecs.Mask
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{}
}

func (qd *QueryDebugger) Mask() ecs.Mask { return qd.mask }

// Toggle adds or removes kind from the query mask.
func (qd *QueryDebugger) Toggle(kind ecs.Kind, on bool) {
	if on {
		qd.mask = qd.mask.With(kind.Mask())
	} else {
		qd.mask = qd.mask.Without(kind.Mask())
	}
}

// Result runs the current mask against storage.
func (qd *QueryDebugger) Result(storage *ecs.Storage) QueryResult {
	return runQuery(storage, qd.mask)
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()
	if imgui.Button("Clear All") {
		qd.mask = 0
	}

	registry := storage.Registry()
	for kind := range registry.Registered().Kinds() {
		selected := qd.mask.Has(kind)
		if imgui.Checkbox(registry.Name(kind), &selected) {
			qd.Toggle(kind, selected)
		}
	}
	imgui.Separator()

	if qd.mask == 0 {
		imgui.Text("No component types selected")
		return
	}

	result := qd.Result(storage)
	imgui.Text(fmt.Sprintf("Mask: %s", qd.mask))
	imgui.Text(fmt.Sprintf("Matching Tables: %d", len(result.Tables)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", result.Entities))

	if imgui.TreeNodeStr("Table Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryTables", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Table")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, t := range result.Tables {
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("#%d", t.ID))
				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(t.ComponentTypes, ", "))
				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", t.EntityCount))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}
}
