package notation

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// token is one recognized piece of an input. A token can carry a direction, buttons,
// or both (drive reversal is 6 plus HP+HK).
type token struct {
	dir     string
	air     bool
	buttons []string
}

var words = map[string]token{
	// directions
	"st.":       {dir: "5"},
	"s.":        {dir: "5"},
	"st":        {dir: "5"},
	"stand":     {dir: "5"},
	"standing":  {dir: "5"},
	"neutral":   {dir: "5"},
	"n.":        {dir: "5"},
	"cr.":       {dir: "2"},
	"c.":        {dir: "2"},
	"cr":        {dir: "2"},
	"d.":        {dir: "2"},
	"crouch":    {dir: "2"},
	"crouching": {dir: "2"},
	"down":      {dir: "2"},
	"f.":        {dir: "6"},
	"fwd":       {dir: "6"},
	"forward":   {dir: "6"},
	"b.":        {dir: "4"},
	"back":      {dir: "4"},
	"u.":        {dir: "8"},
	"up":        {dir: "8"},
	"df":        {dir: "3"},
	"d/f":       {dir: "3"},
	"db":        {dir: "1"},
	"d/b":       {dir: "1"},
	"uf":        {dir: "9"},
	"u/f":       {dir: "9"},
	"ub":        {dir: "7"},
	"u/b":       {dir: "7"},
	"qcf":       {dir: "236"},
	"qcb":       {dir: "214"},
	"qcfx2":     {dir: "236236"},
	"qcbx2":     {dir: "214214"},
	"dp":        {dir: "623"},
	"srk":       {dir: "623"},
	"rdp":       {dir: "421"},
	"hcf":       {dir: "41236"},
	"hcb":       {dir: "63214"},
	"360":       {dir: "360"},
	"spd":       {dir: "360"},
	"720":       {dir: "720"},

	// jumps
	"j.":      {air: true},
	"nj.":     {air: true},
	"fj.":     {air: true},
	"bj.":     {air: true},
	"jump":    {air: true},
	"jumping": {air: true},
	"air":     {air: true},

	// buttons
	"lp":  {buttons: []string{"lp"}},
	"mp":  {buttons: []string{"mp"}},
	"hp":  {buttons: []string{"hp"}},
	"lk":  {buttons: []string{"lk"}},
	"mk":  {buttons: []string{"mk"}},
	"hk":  {buttons: []string{"hk"}},
	"p":   {buttons: []string{"p"}},
	"k":   {buttons: []string{"k"}},
	"pp":  {buttons: []string{"pp"}},
	"kk":  {buttons: []string{"kk"}},
	"ppp": {buttons: []string{"ppp"}},
	"kkk": {buttons: []string{"kkk"}},

	"jab":         {buttons: []string{"lp"}},
	"strong":      {buttons: []string{"mp"}},
	"fierce":      {buttons: []string{"hp"}},
	"short":       {buttons: []string{"lk"}},
	"roundhouse":  {buttons: []string{"hk"}},
	"lightpunch":  {buttons: []string{"lp"}},
	"mediumpunch": {buttons: []string{"mp"}},
	"heavypunch":  {buttons: []string{"hp"}},
	"lightkick":   {buttons: []string{"lk"}},
	"mediumkick":  {buttons: []string{"mk"}},
	"heavykick":   {buttons: []string{"hk"}},

	// system inputs
	"throw":         {buttons: []string{"lp", "lk"}},
	"di":            {buttons: []string{"hp", "hk"}},
	"driveimpact":   {buttons: []string{"hp", "hk"}},
	"parry":         {buttons: []string{"mp", "mk"}},
	"driveparry":    {buttons: []string{"mp", "mk"}},
	"drivereversal": {dir: "6", buttons: []string{"hp", "hk"}},
}

// longest word first so that "strong" wins over "st" and "ppp" over "p"
var wordList = func() []string {
	list := make([]string, 0, len(words))
	for w := range words {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool {
		if len(list[i]) != len(list[j]) {
			return len(list[i]) > len(list[j])
		}
		return list[i] < list[j]
	})
	return list
}()

var arrows = map[rune]byte{
	'↙': '1',
	'↓': '2',
	'↘': '3',
	'←': '4',
	'→': '6',
	'↖': '7',
	'↑': '8',
	'↗': '9',
}

// direction reads a single numpad direction, either a digit 1-9 or an arrow.
func direction(s string) (byte, int, bool) {
	if s == "" {
		return 0, 0, false
	}
	if s[0] >= '1' && s[0] <= '9' {
		return s[0], 1, true
	}
	r, size := utf8.DecodeRuneInString(s)
	if d, ok := arrows[r]; ok {
		return d, size, true
	}
	return 0, 0, false
}

// tokenize splits a lowercased piece of input holding no whitespace and no "+" into
// tokens. It returns the offset of the first unrecognized rune on failure.
func tokenize(piece string) ([]token, int, bool) {
	var tokens []token
	pos := 0

outer:
	for pos < len(piece) {
		rest := piece[pos:]

		for _, w := range wordList {
			if strings.HasPrefix(rest, w) {
				tokens = append(tokens, words[w])
				pos += len(w)
				continue outer
			}
		}

		// charge input, "[4]" or "[←]"
		if rest[0] == '[' {
			d, size, ok := direction(rest[1:])
			if !ok || !strings.HasPrefix(rest[1+size:], "]") {
				return nil, pos, false
			}
			tokens = append(tokens, token{dir: "[" + string(d) + "]"})
			pos += size + 2
			continue
		}

		if d, size, ok := direction(rest); ok {
			tokens = append(tokens, token{dir: string(d)})
			pos += size
			continue
		}

		return nil, pos, false
	}

	return tokens, 0, true
}
