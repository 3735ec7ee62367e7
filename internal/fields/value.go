package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags which members of a Value are meaningful.
type Kind int

const (
	// Missing is a cell the wiki reports as not applicable.
	Missing Kind = iota
	// Frames is a non-negative frame count or range, Low through High.
	Frames
	// Advantage is a signed frame advantage or range with an optional Annotation.
	Advantage
	// Text is anything that could not be classified, kept in Raw.
	Text
	// Flag is a yes or no cell.
	Flag
)

var kindNames = []string{"missing", "frames", "advantage", "text", "flag"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown value kind %q", string(text))
}

// Value is one parsed cell. Raw always holds the trimmed source text.
type Value struct {
	Kind       Kind   `json:"kind"`
	Low        int    `json:"low,omitempty"`
	High       int    `json:"high,omitempty"`
	Annotation string `json:"annotation,omitempty"`
	Flag       bool   `json:"flag,omitempty"`
	Raw        string `json:"raw"`
}

// IsRange reports whether a Frames or Advantage value spans more than one number.
func (v Value) IsRange() bool {
	return (v.Kind == Frames || v.Kind == Advantage) && v.Low != v.High
}

func signed(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// String renders the value in a normalized form, "6", "6-8", "+3 KND", "-2~+1".
func (v Value) String() string {
	switch v.Kind {
	case Missing:
		return "-"
	case Frames:
		if v.IsRange() {
			return fmt.Sprintf("%d-%d", v.Low, v.High)
		}
		return strconv.Itoa(v.Low)
	case Advantage:
		out := signed(v.Low)
		if v.IsRange() {
			out += "~" + signed(v.High)
		}
		if v.Annotation != "" {
			out += " " + v.Annotation
		}
		return out
	case Flag:
		if v.Flag {
			return "yes"
		}
		return "no"
	}
	return v.Raw
}

var (
	integerPattern   = regexp.MustCompile(`^\d+$`)
	rangePattern     = regexp.MustCompile(`^(\d+)\s*[-~]\s*(\d+)$`)
	advantagePattern = regexp.MustCompile(
		`^([+-]\d+)(?:\s*(?:~|to)\s*([+-]?\d+))?(?:\s*~?\s*\(?\s*([A-Za-z][A-Za-z0-9 .]*?)\s*\)?)?$`,
	)
)

var missingText = map[string]bool{
	"":    true,
	"-":   true,
	"--":  true,
	"—":   true,
	"–":   true,
	"n/a": true,
}

var flagText = map[string]bool{
	"yes":   true,
	"true":  true,
	"✓":     true,
	"✔":     true,
	"no":    false,
	"false": false,
	"✗":     false,
	"✘":     false,
}

// Parse classifies a single cell. It never fails, a cell that matches nothing more
// specific is Text.
//
// The order is integer, integer range ("6-8", "6~8"), signed advantage with an
// optional range and annotation ("+3~KND", "-2(KD)", "+26 HKD", "-2~+1"), flag
// words, and finally text. Empty cells and dashes are Missing.
func Parse(raw string) Value {
	text := strings.TrimSpace(raw)
	value := Value{Raw: text}

	lower := strings.ToLower(text)
	if missingText[lower] {
		value.Kind = Missing
		return value
	}

	// U+2212 is common on wiki pages in place of a hyphen
	normalized := strings.ReplaceAll(text, "−", "-")

	if integerPattern.MatchString(normalized) {
		n, err := strconv.Atoi(normalized)
		if err == nil {
			value.Kind = Frames
			value.Low, value.High = n, n
			return value
		}
	}

	if m := rangePattern.FindStringSubmatch(normalized); m != nil {
		low, lowErr := strconv.Atoi(m[1])
		high, highErr := strconv.Atoi(m[2])
		if lowErr == nil && highErr == nil && low <= high {
			value.Kind = Frames
			value.Low, value.High = low, high
			return value
		}
	}

	if m := advantagePattern.FindStringSubmatch(normalized); m != nil {
		low, err := strconv.Atoi(m[1])
		if err == nil {
			high := low
			if m[2] != "" {
				high, err = strconv.Atoi(m[2])
			}
			if err == nil {
				if high < low {
					low, high = high, low
				}
				value.Kind = Advantage
				value.Low, value.High = low, high
				value.Annotation = m[3]
				return value
			}
		}
	}

	if flag, ok := flagText[lower]; ok {
		value.Kind = Flag
		value.Flag = flag
		return value
	}

	value.Kind = Text
	return value
}
