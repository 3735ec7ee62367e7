package wikitable

import (
	"regexp"
	"strings"

	"framedata/lib/htmlutil"
)

var (
	markupHeading = regexp.MustCompile(`^(={1,6})\s*(.*?)\s*={1,6}\s*$`)
	wikiLink      = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]*)\]\]`)
	externalLink  = regexp.MustCompile(`\[https?://\S+\s+([^\]]*)\]`)
	templateCall  = regexp.MustCompile(`\{\{(?:[^|}]*\|)?([^}]*)\}\}`)
	lineBreak     = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
	emphasis      = regexp.MustCompile(`'{2,}`)
)

func hasMarkupTable(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "{|") {
			return true
		}
	}
	return false
}

// markupText reduces inline wiki markup in a cell to its visible text.
func markupText(s string) string {
	s = lineBreak.ReplaceAllString(s, " ")
	s = wikiLink.ReplaceAllString(s, "$1")
	s = externalLink.ReplaceAllString(s, "$1")
	s = templateCall.ReplaceAllString(s, "$1")
	s = htmlTag.ReplaceAllString(s, "")
	s = emphasis.ReplaceAllString(s, "")
	return htmlutil.CleanText(s)
}

// splitCells splits a row line on the cell separator ("||" or "!!") and drops the
// attribute prefix of each cell ('style="..." | text').
func splitCells(line, separator string) []string {
	parts := strings.Split(line, separator)
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		if idx := attributeEnd(part); idx >= 0 {
			part = part[idx+1:]
		}
		cells = append(cells, markupText(part))
	}
	return cells
}

// attributeEnd returns the index of the single "|" ending an attribute prefix, or -1
// if the cell has none. Pipes inside links and templates do not count.
func attributeEnd(cell string) int {
	depth := 0
	for i := 0; i < len(cell); i++ {
		switch {
		case strings.HasPrefix(cell[i:], "[[") || strings.HasPrefix(cell[i:], "{{"):
			depth++
			i++
		case strings.HasPrefix(cell[i:], "]]") || strings.HasPrefix(cell[i:], "}}"):
			if depth > 0 {
				depth--
			}
			i++
		case cell[i] == '|' && depth == 0:
			if strings.Contains(cell[:i], "=") {
				return i
			}
			return -1
		}
	}
	return -1
}

type markupTable struct {
	caption string
	rows    [][]string
	row     []string
}

func (t *markupTable) endRow() {
	if len(t.row) > 0 {
		t.rows = append(t.rows, t.row)
	}
	t.row = nil
}

func (t *markupTable) addCells(cells []string) {
	t.row = append(t.row, cells...)
}

// markupTables scans MediaWiki table markup ({| ... |}) line by line, only reading as
// far into the page as needed to complete the next table. Nested tables are yielded
// when they close, before the table that contains them.
func markupTables(content string, fail func(error)) func() (RawTable, bool) {
	lines := strings.Split(content, "\n")
	pos := 0
	heading := ""
	var stack []*markupTable

	return func() (RawTable, bool) {
		for pos < len(lines) {
			line := strings.TrimSpace(lines[pos])
			pos++

			if len(stack) == 0 {
				if m := markupHeading.FindStringSubmatch(line); m != nil {
					heading = markupText(m[2])
					continue
				}
				if strings.HasPrefix(line, "{|") {
					stack = append(stack, &markupTable{caption: heading})
				}
				continue
			}

			current := stack[len(stack)-1]
			switch {
			case strings.HasPrefix(line, "{|"):
				stack = append(stack, &markupTable{caption: current.caption})
			case strings.HasPrefix(line, "|}"):
				current.endRow()
				stack = stack[:len(stack)-1]
				return RawTable{Caption: current.caption, Rows: current.rows}, true
			case strings.HasPrefix(line, "|+"):
				current.caption = markupText(line[2:])
			case strings.HasPrefix(line, "|-"):
				current.endRow()
			case strings.HasPrefix(line, "!"):
				current.addCells(splitCells(line[1:], "!!"))
			case strings.HasPrefix(line, "|"):
				current.addCells(splitCells(line[1:], "||"))
			case line == "":
			default:
				// continuation of the previous cell
				if n := len(current.row); n > 0 {
					current.row[n-1] = htmlutil.CleanText(current.row[n-1] + " " + markupText(line))
				}
			}
		}
		// a table left open at the end of the page still counts
		if n := len(stack); n > 0 {
			fail(&ExtractionError{Reason: "table is never closed"})
			current := stack[n-1]
			current.endRow()
			stack = stack[:n-1]
			return RawTable{Caption: current.caption, Rows: current.rows}, true
		}
		return RawTable{}, false
	}
}
