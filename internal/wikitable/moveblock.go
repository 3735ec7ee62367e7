package wikitable

import (
	"framedata/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Frame data pages of the wiki give every move a table of its own:
//
//	<section class="section-collapsible">
//	  <h5><span>214P(charged)</span></h5>
//	  <table class="wikitable">
//	    <tr><th rowspan="4"><div><p><span>214P</span></p><div>Hashogeki</div></div></th>
//	        <th>Damage</th><th>Startup</th></tr>
//	    <tr><td>800</td><td>16</td></tr>
//	    <tr><th>On Hit</th><th>On Block</th></tr>
//	    <tr><td>KD +32</td><td>-2</td></tr>
//	  </table>
//	</section>
//
// The header and value rows alternate, a cell can be a hitbox image link.
const (
	moveInputSelector = "tr > th > div > p > span"
	moveNameSelector  = "tr > th > div > div"
)

// ownFind is Find without the matches inside tables nested in table.
func ownFind(table *goquery.Selection, selector string) *goquery.Selection {
	tableNode := table.Get(0)
	return table.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("table").Get(0) == tableNode
	})
}

func isMoveBlock(table *goquery.Selection) bool {
	return ownFind(table, moveInputSelector).Length() > 0
}

// moveIdentifier returns the text of the heading right before table. The wiki tells
// variants of one input apart there ("214P" and "214P(charged)").
func moveIdentifier(table *goquery.Selection) string {
	prev := table.Prev()
	if prev.Length() == 0 || !isHeading(prev.Get(0)) {
		return ""
	}
	text := htmlutil.SelectionText(prev.ChildrenFiltered("span").First())
	if text == "" {
		text = headingText(prev)
	}
	return text
}

// moveBlockRows folds a move block into a header and a single row. The first two
// columns are "Input" (identifier, or the input of the block when there is none) and
// "Name", then every header cell in order, paired with every value cell in order.
func moveBlockRows(table *goquery.Selection, identifier string) [][]string {
	input := htmlutil.SelectionText(ownFind(table, moveInputSelector).First())
	name := htmlutil.SelectionText(ownFind(table, moveNameSelector).First())
	if identifier == "" {
		identifier = input
	}

	header := []string{"Input", "Name"}
	values := []string{identifier, name}

	ownFind(table, "tr").Each(func(_ int, tr *goquery.Selection) {
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			isHeader := goquery.NodeName(cell) == "th"
			if isHeader && cell.Find("div > p > span").Length() > 0 {
				return
			}
			// hitbox images
			if isHeader && cell.ChildrenFiltered("a").Length() > 0 {
				return
			}

			text := htmlutil.SelectionText(cell)
			if isHeader && text == "" {
				return
			}
			for c := 0; c < spanAttr(cell, "colspan"); c++ {
				if isHeader {
					header = append(header, text)
				} else {
					values = append(values, text)
				}
			}
		})
	})

	return [][]string{header, values}
}
