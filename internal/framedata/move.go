// Package framedata builds moves out of normalized frame data tables and indexes them
// per character for lookup.
package framedata

import (
	"fmt"

	"framedata/internal/fields"
)

// Move is one row of a character's frame data.
type Move struct {
	CharacterID string
	// Canonical is the canonical notation of the move, unique within a character.
	Canonical string
	// Aliases never overlap the aliases or canonical key of another move of the same
	// character.
	Aliases     []string
	DisplayName string
	// Input is the notation as it was written on the page.
	Input string
	// Fields holds every recognized column. A field that is absent was not reported by
	// the page, a Missing value was reported as not applicable.
	Fields map[fields.Field]fields.Value
	Extra  []fields.Extra
	// Table is the caption of the table the move was found in, Row its row in it.
	Table string
	Row   int
}

// Value returns the value of a field.
func (m Move) Value(field fields.Field) (fields.Value, bool) {
	v, ok := m.Fields[field]
	return v, ok
}

func (m Move) String() string {
	if m.DisplayName == "" || m.DisplayName == m.Input {
		return m.Canonical
	}
	return fmt.Sprintf("%s (%s)", m.Canonical, m.DisplayName)
}

// WarningKind classifies a Warning.
type WarningKind int

const (
	// WarningNotation marks a row skipped because its input could not be canonicalized.
	WarningNotation WarningKind = iota
	// WarningCollision marks a move whose canonical key or alias was already taken.
	WarningCollision
	// WarningField marks a cell or header the normalizer could not interpret.
	WarningField
)

var warningKindNames = []string{"notation", "collision", "field"}

func (k WarningKind) String() string {
	if int(k) < 0 || int(k) >= len(warningKindNames) {
		return fmt.Sprintf("warning(%d)", int(k))
	}
	return warningKindNames[k]
}

func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *WarningKind) UnmarshalText(text []byte) error {
	for i, name := range warningKindNames {
		if name == string(text) {
			*k = WarningKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown warning kind %q", string(text))
}

// Warning is a non-fatal problem found while building a character's moves.
type Warning struct {
	Kind    WarningKind
	Table   string
	Row     int
	Message string
}

func (w Warning) String() string {
	if w.Table == "" {
		return fmt.Sprintf("%s: row %d: %s", w.Kind, w.Row, w.Message)
	}
	return fmt.Sprintf("%s: %s, row %d: %s", w.Kind, w.Table, w.Row, w.Message)
}

// Report collects what went wrong during a load, keyed by character id.
type Report struct {
	Failures map[string]error
	Warnings map[string][]Warning
}

func (r Report) clone() Report {
	out := Report{
		Failures: make(map[string]error, len(r.Failures)),
		Warnings: make(map[string][]Warning, len(r.Warnings)),
	}
	for id, err := range r.Failures {
		out.Failures[id] = err
	}
	for id, warnings := range r.Warnings {
		out.Warnings[id] = append([]Warning(nil), warnings...)
	}
	return out
}
