package loader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMoves is the cause of a Normalizing failure: the page was fetched and has
// tables, but not a single move could be built out of them.
var ErrNoMoves = errors.New("fetched, nothing found")

// StageError is a character's pipeline failing at Stage.
type StageError struct {
	CharacterID string
	Stage       State
	Err         error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("load %s: %s: %s", e.CharacterID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// AllFailedError is returned by LoadAll when not a single character was built.
type AllFailedError struct {
	// Failures is ordered by character id.
	Failures []error
}

func (e *AllFailedError) Error() string {
	if len(e.Failures) == 0 {
		return "load: no characters to load"
	}
	messages := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("load: every character failed: %s", strings.Join(messages, "; "))
}

func (e *AllFailedError) Unwrap() []error {
	return e.Failures
}
