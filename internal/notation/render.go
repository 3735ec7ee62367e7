package notation

import (
	"strings"
)

// style renders one segment, returning false when the segment has no rendering in it.
// first is set for the opening segment of a sequence, the only one where a missing
// direction means neutral.
type style func(seg segment, first bool) (string, bool)

func airPrefix(seg segment) string {
	if seg.air {
		return "j."
	}
	return ""
}

func joinButtons(seg segment) string {
	return strings.Join(seg.buttons, "+")
}

func numpadStyle(seg segment, _ bool) (string, bool) {
	return airPrefix(seg) + seg.dir + joinButtons(seg), true
}

// compass directions end with the separator they are written with
var compassLong = map[string]string{
	"5":      "st.",
	"2":      "cr.",
	"6":      "f.",
	"4":      "b.",
	"8":      "u.",
	"3":      "df+",
	"1":      "db+",
	"9":      "uf+",
	"7":      "ub+",
	"236":    "qcf+",
	"214":    "qcb+",
	"623":    "dp+",
	"421":    "rdp+",
	"41236":  "hcf+",
	"63214":  "hcb+",
	"236236": "qcfx2+",
	"214214": "qcbx2+",
	"360":    "360+",
	"720":    "720+",
}

var compassShort = map[string]string{
	"5":      "s.",
	"2":      "c.",
	"6":      "f.",
	"4":      "b.",
	"8":      "u.",
	"3":      "df",
	"1":      "db",
	"9":      "uf",
	"7":      "ub",
	"236":    "qcf",
	"214":    "qcb",
	"623":    "srk",
	"421":    "rdp",
	"41236":  "hcf",
	"63214":  "hcb",
	"236236": "qcfx2",
	"214214": "qcbx2",
	"360":    "spd",
	"720":    "720",
}

func compassStyle(table map[string]string) style {
	return func(seg segment, _ bool) (string, bool) {
		dir := seg.dir
		if dir != "" {
			var ok bool
			dir, ok = table[dir]
			if !ok {
				return "", false
			}
		}
		buttons := joinButtons(seg)
		if buttons == "" {
			dir = strings.TrimSuffix(dir, "+")
		}
		return airPrefix(seg) + dir + buttons, true
	}
}

var arrowOf = map[rune]string{
	'1': "↙",
	'2': "↓",
	'3': "↘",
	'4': "←",
	'6': "→",
	'7': "↖",
	'8': "↑",
	'9': "↗",
}

func arrowStyle(plus bool) style {
	return func(seg segment, first bool) (string, bool) {
		var dir strings.Builder
		if seg.dir == "5" && !first {
			return "", false
		}
		if seg.dir != "5" {
			for _, r := range seg.dir {
				switch r {
				case '[', ']':
					dir.WriteRune(r)
					continue
				}
				arrow, ok := arrowOf[r]
				if !ok {
					return "", false
				}
				dir.WriteString(arrow)
			}
		}

		buttons := joinButtons(seg)
		if plus && dir.Len() > 0 && buttons != "" {
			return airPrefix(seg) + dir.String() + "+" + buttons, true
		}
		return airPrefix(seg) + dir.String() + buttons, true
	}
}

// medium kick is left out since its classic name, forward, reads as a direction
var classicNames = map[string]string{
	"lp": "jab",
	"mp": "strong",
	"hp": "fierce",
	"lk": "short",
	"hk": "roundhouse",
}

func classicStyle(stance bool) style {
	return func(seg segment, first bool) (string, bool) {
		if len(seg.buttons) == 0 {
			return "", false
		}
		names := make([]string, len(seg.buttons))
		for i, b := range seg.buttons {
			name, ok := classicNames[b]
			if !ok {
				return "", false
			}
			names[i] = name
		}

		dir := ""
		if seg.dir != "" && (stance || seg.dir != "5" || !first) {
			var ok bool
			dir, ok = compassLong[seg.dir]
			if !ok {
				return "", false
			}
		}
		return airPrefix(seg) + dir + strings.Join(names, "+"), true
	}
}

var aliasStyles = []style{
	compassStyle(compassLong),
	compassStyle(compassShort),
	arrowStyle(true),
	arrowStyle(false),
	classicStyle(true),
	classicStyle(false),
}

func render(segments []segment, s style) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		part, ok := s(seg, i == 0)
		if !ok {
			return ""
		}
		parts[i] = part
	}
	return strings.Join(parts, ">")
}
