package commands

import (
	"fmt"
	"os"
	"strings"

	"framedata/internal/fields"
	"framedata/internal/framedata"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func valueText(m framedata.Move, field fields.Field) string {
	v, ok := m.Value(field)
	if !ok {
		return ""
	}
	return v.String()
}

func renderMove(m framedata.Move) {
	t := newTable()
	t.SetTitle("%s: %s", m.CharacterID, m)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"canonical", m.Canonical})
	t.AppendRow(table.Row{"name", m.DisplayName})
	t.AppendRow(table.Row{"input", m.Input})
	if len(m.Aliases) > 0 {
		t.AppendRow(table.Row{"aliases", strings.Join(m.Aliases, ", ")})
	}
	t.AppendSeparator()

	for _, field := range fields.All {
		if field == fields.Move || field == fields.Input || field == fields.Name {
			continue
		}
		v, ok := m.Value(field)
		if !ok || v.Kind == fields.Missing {
			continue
		}
		t.AppendRow(table.Row{string(field), v.String()})
	}
	for _, extra := range m.Extra {
		header := extra.Header
		if header == "" {
			header = "(no header)"
		}
		t.AppendRow(table.Row{header, extra.Value.String()})
	}

	t.SetCaption("from %q, row %d", m.Table, m.Row)
	t.Render()
}

func renderMoves(title string, moves []framedata.Move) {
	t := newTable()
	t.SetTitle("%s", title)
	t.AppendHeader(table.Row{"#", "Canonical", "Name", "Startup", "On Hit", "On Block"})
	for i, m := range moves {
		t.AppendRow(table.Row{
			i + 1,
			m.Canonical,
			m.DisplayName,
			valueText(m, fields.Startup),
			valueText(m, fields.OnHit),
			valueText(m, fields.OnBlock),
		})
	}
	t.Render()
}

func renderSummary(catalog *framedata.Catalog) {
	report := catalog.Report()

	t := newTable()
	t.AppendHeader(table.Row{"Character", "Moves", "Warnings", "Status"})
	for _, character := range catalog.Roster().All() {
		moves, err := catalog.Get(character.ID)
		status := "built"
		if err != nil {
			status = "not loaded"
		}
		if failure, failed := report.Failures[character.ID]; failed {
			status = failure.Error()
		}
		t.AppendRow(table.Row{
			character.Name,
			len(moves),
			len(report.Warnings[character.ID]),
			status,
		})
	}
	t.AppendFooter(table.Row{"Total", catalog.Len(), "", fmt.Sprintf("%d built", len(catalog.Characters()))})
	t.Render()
}
