// Package wikitable finds the tables of a wiki page and returns them as rows of raw
// text cells. It does not interpret the cells in any way.
package wikitable

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RawTable is one table of a page. The first row is the header.
type RawTable struct {
	// Index is the ordinal of the table among the tables yielded for a page.
	Index int
	// Caption is the table's <caption> or the nearest heading before it.
	Caption string
	Rows    [][]string
}

// Header returns the first row, or nil for an empty table.
func (t RawTable) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Body returns every row after the header.
func (t RawTable) Body() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// ExtractionError is returned when a page holds nothing that looks like a table.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract tables: %s", e.Reason)
}

// Scanner yields the tables of a page one at a time, in a single pass.
// A table's rows are only built when it is scanned.
type Scanner struct {
	next  func() (RawTable, bool)
	table RawTable
	count int
	done  bool
	err   error
}

// Scan advances to the next table, it returns false once the page is exhausted.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for {
		table, ok := s.next()
		if !ok {
			s.done = true
			s.table = RawTable{}
			return false
		}
		if len(table.Rows) == 0 {
			continue
		}
		table.Index = s.count
		s.count++
		s.table = table
		return true
	}
}

// Err returns the first problem found while scanning. Tables are still yielded when
// it is set, it only marks the output of the page as suspect.
func (s *Scanner) Err() error {
	return s.err
}

// Table returns the table produced by the last call to Scan.
func (s *Scanner) Table() RawTable {
	return s.table
}

// Extract locates the tables of content, which may be rendered HTML or MediaWiki markup.
//
// An *ExtractionError is returned only if there is no table-like structure at all,
// a page whose tables are all empty yields an empty Scanner instead.
func Extract(content string) (*Scanner, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ExtractionError{Reason: "page is empty"}
	}

	if strings.Contains(strings.ToLower(content), "<table") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err != nil {
			return nil, &ExtractionError{Reason: fmt.Sprintf("parse html: %s", err)}
		}
		if doc.Find("table").Length() > 0 {
			return &Scanner{next: htmlTables(doc)}, nil
		}
	}

	if hasMarkupTable(content) {
		scanner := &Scanner{}
		scanner.next = markupTables(content, func(err error) {
			if scanner.err == nil {
				scanner.err = err
			}
		})
		return scanner, nil
	}

	return nil, &ExtractionError{Reason: "no table found"}
}
