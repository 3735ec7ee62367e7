package fields

import (
	"fmt"

	"framedata/internal/wikitable"
)

// Extra is a cell kept under its original header because its column maps to no field.
// Overflow cells past the last header have an empty Header.
type Extra struct {
	Header string `json:"header"`
	Value  Value  `json:"value"`
}

// Row is one body row of a table.
type Row struct {
	// Index is the position of the row in the raw table, the header being row 0.
	Index int
	Cells map[Field]Value
	Extra []Extra
}

// Warning describes a cell or header that could not be interpreted the way its column
// implies.
type Warning struct {
	Row     int
	Header  string
	Field   Field
	Raw     string
	Message string
}

func (w Warning) String() string {
	if w.Row == 0 {
		return fmt.Sprintf("column %q: %s", w.Header, w.Message)
	}
	if w.Raw == "" {
		return fmt.Sprintf("row %d, column %q: %s", w.Row, w.Header, w.Message)
	}
	return fmt.Sprintf("row %d, column %q: %s (%q)", w.Row, w.Header, w.Message, w.Raw)
}

// Table is a RawTable whose columns have been mapped onto fields.
type Table struct {
	Caption string
	Index   int
	// Headers holds the field of every column, Unmapped for the ones kept as extra.
	Headers []Field
	// HeaderText holds the original text of every column.
	HeaderText []string
	Rows       []Row
	Warnings   []Warning
}

// Has reports whether one of the table's columns maps to field.
func (t Table) Has(field Field) bool {
	for _, h := range t.Headers {
		if h == field {
			return true
		}
	}
	return false
}

// FrameData reports whether the table has at least one frame data column.
func (t Table) FrameData() bool {
	for _, h := range t.Headers {
		if h.FrameData() {
			return true
		}
	}
	return false
}

// Normalize maps the header of table onto fields and parses every body cell.
//
// Columns with unknown headers, and columns repeating a field an earlier column
// already claimed, are kept in each row's Extra. Rows shorter than the header are
// padded with Missing values, cells beyond the header are kept as Extra with an empty
// header. Only numeric columns whose cells parse as Text produce warnings.
func Normalize(table wikitable.RawTable) Table {
	out := Table{
		Caption: table.Caption,
		Index:   table.Index,
	}

	header := table.Header()
	out.Headers = make([]Field, len(header))
	out.HeaderText = make([]string, len(header))

	claimed := map[Field]bool{}
	for i, text := range header {
		out.HeaderText[i] = text

		field, ok := Lookup(text)
		if !ok {
			out.Headers[i] = Unmapped
			continue
		}
		if claimed[field] {
			out.Headers[i] = Unmapped
			out.Warnings = append(out.Warnings, Warning{
				Header:  text,
				Field:   field,
				Message: fmt.Sprintf("duplicate column for %s, kept as extra", field),
			})
			continue
		}
		claimed[field] = true
		out.Headers[i] = field
	}

	for offset, cells := range table.Body() {
		row := Row{
			Index: offset + 1,
			Cells: make(map[Field]Value, len(claimed)),
		}

		for i, field := range out.Headers {
			if i >= len(cells) {
				if field != Unmapped {
					row.Cells[field] = Value{Kind: Missing}
				}
				continue
			}

			value := Parse(cells[i])
			if field == Unmapped {
				row.Extra = append(row.Extra, Extra{
					Header: out.HeaderText[i],
					Value:  value,
				})
				continue
			}

			row.Cells[field] = value
			if field.Numeric() && value.Kind == Text {
				out.Warnings = append(out.Warnings, Warning{
					Row:     row.Index,
					Header:  out.HeaderText[i],
					Field:   field,
					Raw:     value.Raw,
					Message: fmt.Sprintf("could not parse %s", field),
				})
			}
		}

		for _, cell := range cells[min(len(cells), len(out.Headers)):] {
			row.Extra = append(row.Extra, Extra{Value: Parse(cell)})
		}

		out.Rows = append(out.Rows, row)
	}

	return out
}
