package framedata

import (
	"fmt"
	"maps"
	"slices"

	"framedata/internal/components/assert"
	"framedata/internal/fields"
	"framedata/internal/notation"
)

// BuildResult is the outcome of Build for one character.
type BuildResult struct {
	Moves    []Move
	Warnings []Warning
}

// cellText returns the raw text of column col in row, wherever the normalizer put it.
func cellText(table fields.Table, row fields.Row, col int) string {
	field := table.Headers[col]
	if field != fields.Unmapped {
		v, ok := row.Cells[field]
		if !ok || v.Kind == fields.Missing {
			return ""
		}
		return v.Raw
	}

	// unmapped cells are kept in column order, count the ones before col
	nth := 0
	for i := 0; i < col; i++ {
		if table.Headers[i] == fields.Unmapped {
			nth++
		}
	}
	if nth >= len(row.Extra) {
		return ""
	}
	v := row.Extra[nth].Value
	if v.Kind == fields.Missing {
		return ""
	}
	return v.Raw
}

func fieldText(row fields.Row, field fields.Field) string {
	v, ok := row.Cells[field]
	if !ok || v.Kind == fields.Missing {
		return ""
	}
	return v.Raw
}

// inputColumn picks the column holding the notation, input then move then the first.
func inputColumn(table fields.Table) int {
	for _, field := range []fields.Field{fields.Input, fields.Move} {
		if i := slices.Index(table.Headers, field); i >= 0 {
			return i
		}
	}
	return 0
}

// builder keeps track of the keys claimed by the moves of one character.
type builder struct {
	characterID string
	// canonical key or alias -> index of the move that owns it
	claimed map[string]int
	result  BuildResult
}

func (b *builder) warn(kind WarningKind, table string, row int, format string, args ...any) {
	b.result.Warnings = append(b.result.Warnings, Warning{
		Kind:    kind,
		Table:   table,
		Row:     row,
		Message: fmt.Sprintf(format, args...),
	})
}

func (b *builder) add(table fields.Table, row fields.Row) {
	input := cellText(table, row, inputColumn(table))
	if input == "" {
		b.warn(WarningNotation, table.Caption, row.Index, "row has no input")
		return
	}

	n, err := notation.Canonicalize(input)
	if err != nil {
		b.warn(WarningNotation, table.Caption, row.Index, "%s", err)
		return
	}

	canonical := n.Canonical
	if owner, taken := b.claimed[canonical]; taken {
		suffix := 2
		for {
			candidate := fmt.Sprintf("%s#%d", n.Canonical, suffix)
			if _, taken := b.claimed[candidate]; !taken {
				canonical = candidate
				break
			}
			suffix++
		}
		b.warn(
			WarningCollision, table.Caption, row.Index,
			"%q is already used by %s, kept as %q",
			n.Canonical, b.result.Moves[owner], canonical,
		)
	}

	index := len(b.result.Moves)
	b.claimed[canonical] = index

	aliases := make([]string, 0, len(n.Aliases))
	for _, alias := range n.Aliases {
		if owner, taken := b.claimed[alias]; taken {
			b.warn(
				WarningCollision, table.Caption, row.Index,
				"alias %q of %q is already used by %s",
				alias, canonical, b.result.Moves[owner],
			)
			continue
		}
		// lookups canonicalize the query first, an alias whose canonical form belongs
		// to another move would find that move instead
		if owner, taken := b.claimed[notation.Key(alias)]; taken && owner != index {
			b.warn(
				WarningCollision, table.Caption, row.Index,
				"alias %q of %q finds %s",
				alias, canonical, b.result.Moves[owner],
			)
			continue
		}
		b.claimed[alias] = index
		aliases = append(aliases, alias)
	}

	displayName := fieldText(row, fields.Name)
	if displayName == "" {
		displayName = fieldText(row, fields.Move)
	}
	if displayName == "" {
		displayName = input
	}

	b.result.Moves = append(b.result.Moves, Move{
		CharacterID: b.characterID,
		Canonical:   canonical,
		Aliases:     aliases,
		DisplayName: displayName,
		Input:       input,
		Fields:      maps.Clone(row.Cells),
		Extra:       slices.Clone(row.Extra),
		Table:       table.Caption,
		Row:         row.Index,
	})
}

// Build turns the normalized tables of one character's page into moves, in page order.
//
// Tables without a single frame data column are skipped. Rows whose input cannot be
// canonicalized are skipped with a warning. A move whose canonical key is already
// taken by an earlier move is kept under "<key>#2", "<key>#3" and so on, and aliases
// already taken are dropped from the later move. Both are reported as collisions.
func Build(characterID string, tables []fields.Table) BuildResult {
	assert.NotEmptyStr(characterID)

	b := &builder{
		characterID: characterID,
		claimed:     map[string]int{},
	}

	for _, table := range tables {
		if !table.FrameData() {
			continue
		}
		for _, w := range table.Warnings {
			b.result.Warnings = append(b.result.Warnings, Warning{
				Kind:    WarningField,
				Table:   table.Caption,
				Row:     w.Row,
				Message: w.String(),
			})
		}
		for _, row := range table.Rows {
			b.add(table, row)
		}
	}

	return b.result
}
