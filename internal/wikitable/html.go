package wikitable

import (
	"regexp"
	"strconv"
	"strings"

	"framedata/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// spans larger than this are treated as a typo in the page source
const maxSpan = 64

var editLink = regexp.MustCompile(`\[\s*edit[^\]]*\]`)

func headingText(sel *goquery.Selection) string {
	text := htmlutil.SelectionText(sel)
	text = editLink.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func isHeading(node *html.Node) bool {
	switch node.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func spanAttr(sel *goquery.Selection, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(sel.AttrOr(name, "1")))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

func isSection(node *html.Node) bool {
	switch node.Data {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

type htmlTable struct {
	selection *goquery.Selection
	caption   string
	// identifier is set for move blocks, see moveBlockRows
	identifier string
	moveBlock  bool
}

// htmlTables walks the document's headings and tables in document order. Captions are
// resolved up front since they depend on what came before a table, rows are resolved
// lazily.
func htmlTables(doc *goquery.Document) func() (RawTable, bool) {
	var tables []htmlTable

	heading := ""
	section := ""
	doc.Find("h1, h2, h3, h4, h5, h6, table").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if isHeading(node) {
			heading = headingText(s)
			if isSection(node) {
				section = heading
			}
			return
		}

		if isMoveBlock(s) {
			identifier := moveIdentifier(s)
			caption := section
			if caption == "" {
				caption = identifier
			}
			tables = append(tables, htmlTable{
				selection:  s,
				caption:    caption,
				identifier: identifier,
				moveBlock:  true,
			})
			return
		}

		caption := htmlutil.SelectionText(s.ChildrenFiltered("caption"))
		if caption == "" {
			caption = heading
		}
		tables = append(tables, htmlTable{selection: s, caption: caption})
	})

	i := 0
	return func() (RawTable, bool) {
		if i >= len(tables) {
			return RawTable{}, false
		}
		t := tables[i]
		i++

		var rows [][]string
		if t.moveBlock {
			rows = moveBlockRows(t.selection, t.identifier)
		} else {
			rows = htmlRows(t.selection)
		}
		return RawTable{Caption: t.caption, Rows: rows}, true
	}
}

type pendingSpan struct {
	text string
	left int
}

// htmlRows returns the rows that belong to table itself, skipping the rows of nested
// tables. colspan cells are repeated horizontally and rowspan cells are carried down
// into the following rows at the same position.
func htmlRows(table *goquery.Selection) [][]string {
	tableNode := table.Get(0)

	var rows [][]string
	// column position -> cell carried down by a rowspan
	carried := map[int]*pendingSpan{}

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Closest("table").Get(0) != tableNode {
			return
		}

		var row []string
		drain := func() {
			for {
				pending, ok := carried[len(row)]
				if !ok {
					return
				}
				row = append(row, pending.text)
				pending.left--
				if pending.left == 0 {
					delete(carried, len(row)-1)
				}
			}
		}

		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			text := htmlutil.SelectionText(cell)
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")
			for c := 0; c < colspan; c++ {
				drain()
				if rowspan > 1 {
					carried[len(row)] = &pendingSpan{text: text, left: rowspan - 1}
				}
				row = append(row, text)
			}
		})
		// carried cells that sit after the last real cell of this row
		drain()

		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	return rows
}
