package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GetText concatenates every text node under node. <br> elements are rendered as a
// single space and nothing inside a nested <table> is collected, so the text of a cell
// never includes the cells of a table embedded in it.
func GetText(node *html.Node) string {
	var builder strings.Builder
	getTextRecursive(node, &builder, true)
	return builder.String()
}

func getTextRecursive(node *html.Node, builder *strings.Builder, root bool) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
		return
	case html.ElementNode:
		switch node.DataAtom {
		case atom.Br:
			builder.WriteString(" ")
			return
		case atom.Script, atom.Style:
			return
		case atom.Table:
			if !root {
				return
			}
		}
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, builder, false)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText removes non-printable runes, trims and collapses inner whitespace.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SelectionText is CleanText(GetText(n)) for the first node of the selection.
func SelectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return CleanText(GetText(sel.Get(0)))
}
