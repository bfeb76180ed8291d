// Package report renders the power-assert context of a captured call.
package report

import (
	"fmt"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/miruken-go/empower"
	"github.com/olekukonko/tablewriter"
)

type (
	// document is the serialized shape of a Context.
	document struct {
		Source empower.Source `json:"source"`
		Args   []argument     `json:"args"`
	}

	argument struct {
		Value  any            `json:"value"`
		Events []empower.Event `json:"events"`
	}
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON encodes ctx.  Captured values are encoded as is,
// keeping the keys of maps and the tags of structs.
func JSON(ctx *empower.Context) ([]byte, error) {
	if ctx == nil {
		return []byte("null"), nil
	}
	doc := document{Source: ctx.Source, Args: make([]argument, len(ctx.Args))}
	for i, arg := range ctx.Args {
		doc.Args[i] = argument{arg.Value, arg.Events}
	}
	return api.Marshal(doc)
}

// Table writes the captured events of ctx as a table, one row per
// event, ordered by argument and then by path.
func Table(w io.Writer, ctx *empower.Context) {
	if ctx == nil {
		return
	}
	if _, err := fmt.Fprintln(w, ctx.Source.Content); err != nil {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Arg", "Path", "Value"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})
	for i, arg := range ctx.Args {
		events := append([]empower.Event(nil), arg.Events...)
		sort.SliceStable(events, func(a, b int) bool {
			return events[a].Path < events[b].Path
		})
		for _, event := range events {
			table.Append([]string{
				fmt.Sprintf("%d", i), event.Path, fmt.Sprintf("%#v", event.Value),
			})
		}
	}
	table.Render()
}
