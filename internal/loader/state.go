package loader

import "fmt"

// State is the position of a character in its load pipeline. A pipeline only moves
// forward: Pending, Fetching, Extracting, Normalizing, then Built or Failed.
type State int

const (
	Pending State = iota
	Fetching
	Extracting
	Normalizing
	Built
	Failed
)

var stateNames = []string{"pending", "fetching", "extracting", "normalizing", "built", "failed"}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Built || s == Failed
}
