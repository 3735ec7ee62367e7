// Package notation turns the many ways a fighting game input is written ("cr.MK",
// "2MK", "↓+MK", "crouching medium kick") into a single canonical numpad key plus a
// set of aliases.
package notation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Notation is the canonical form of an input and the alternate spellings that should
// find it.
type Notation struct {
	Canonical string
	// Aliases is sorted, lowercase and never contains Canonical. The input as written
	// is not kept here, lookups fold case so it would only duplicate its lowercase
	// form. Callers keep it themselves (framedata.Move.Input).
	Aliases []string
}

// Error is returned when an input holds no recognizable token or holds a token
// the canonicalizer does not know.
type Error struct {
	Raw    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid notation %q: %s", e.Raw, e.Reason)
}

// segment is one step of a sequence such as "236K > K".
type segment struct {
	air     bool
	dir     string
	buttons []string
}

var (
	whitespace    = regexp.MustCompile(`\s+`)
	sequenceSplit = regexp.MustCompile(`>|~|,|xx`)
	modifierTail  = regexp.MustCompile(`^(.*?)\s*((?:\([^()]*\)\s*)+)$`)
)

// splitModifier separates trailing parenthetical modifiers, "214P (Charged)" becomes
// "214P" and "(charged)".
func splitModifier(raw string) (string, string) {
	m := modifierTail.FindStringSubmatch(raw)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return raw, ""
	}
	modifier := whitespace.ReplaceAllString(strings.ToLower(m[2]), "")
	return m[1], modifier
}

func parseSegment(raw string, first bool) (segment, error) {
	var seg segment
	var buttons []string

	for _, piece := range strings.Split(raw, "+") {
		if piece == "" {
			continue
		}
		tokens, offset, ok := tokenize(piece)
		if !ok {
			return segment{}, fmt.Errorf("unrecognized input at %q", piece[offset:])
		}

		pieceDir := ""
		seenButton := false
		for _, tok := range tokens {
			if tok.air {
				seg.air = true
			}
			if tok.dir != "" {
				if seenButton {
					return segment{}, fmt.Errorf("direction after button in %q", piece)
				}
				pieceDir += tok.dir
			}
			if len(tok.buttons) > 0 {
				seenButton = true
				buttons = append(buttons, tok.buttons...)
			}
		}
		// "5LP+5MP" repeats one direction, "2LP+6MP" asks for two at once
		if seg.dir != "" && pieceDir != "" && pieceDir != seg.dir {
			return segment{}, fmt.Errorf("conflicting directions %s and %s in %q", seg.dir, pieceDir, raw)
		}
		if seg.dir == "" {
			seg.dir = pieceDir
		}
	}

	if seg.dir == "" && len(buttons) == 0 {
		return segment{}, fmt.Errorf("no direction or button in %q", raw)
	}
	if seg.dir == "" && first && !seg.air {
		seg.dir = "5"
	}

	sort.Strings(buttons)
	for _, b := range buttons {
		if len(seg.buttons) == 0 || seg.buttons[len(seg.buttons)-1] != b {
			seg.buttons = append(seg.buttons, b)
		}
	}
	return seg, nil
}

func parse(raw string) ([]segment, string, error) {
	base, modifier := splitModifier(strings.TrimSpace(raw))

	lower := strings.ToLower(base)
	var segments []segment
	for _, part := range sequenceSplit.Split(lower, -1) {
		part = whitespace.ReplaceAllString(part, "")
		if part == "" {
			continue
		}
		seg, err := parseSegment(part, len(segments) == 0)
		if err != nil {
			return nil, "", err
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return nil, "", fmt.Errorf("no input")
	}
	return segments, modifier, nil
}

// Canonicalize parses raw and returns its canonical key and aliases.
//
// The canonical key is numpad notation in lowercase: an optional "j." air prefix, the
// direction (5 when none is written and the input is grounded), then the buttons
// sorted and joined with "+". Sequences are joined with ">" and trailing
// parenthetical modifiers are kept as a suffix. "MP+LP", "LP+MP" and "5LP+5MP" are
// all "5lp+mp", "cr.MK" is "2mk", "214P (Charged)" is "214p(charged)".
//
// Canonicalize is idempotent, the canonical key of a canonical key is itself.
func Canonicalize(raw string) (Notation, error) {
	segments, modifier, err := parse(raw)
	if err != nil {
		return Notation{}, &Error{Raw: raw, Reason: err.Error()}
	}

	canonical := render(segments, numpadStyle) + modifier

	aliasSet := map[string]struct{}{}
	add := func(alias string) {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" && alias != canonical {
			aliasSet[alias] = struct{}{}
		}
	}

	add(raw)
	add(whitespace.ReplaceAllString(raw, ""))
	for _, style := range aliasStyles {
		rendered := render(segments, style)
		if rendered != "" {
			add(rendered + modifier)
		}
	}

	aliases := make([]string, 0, len(aliasSet))
	for alias := range aliasSet {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	return Notation{
		Canonical: canonical,
		Aliases:   aliases,
	}, nil
}

// Key returns the lookup key of query: its canonical form when it parses, otherwise
// the query lowercased and trimmed.
func Key(query string) string {
	n, err := Canonicalize(query)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(query))
	}
	return n.Canonical
}
