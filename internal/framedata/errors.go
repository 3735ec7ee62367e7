package framedata

import "fmt"

// UnknownCharacterError is returned when a character reference matches nothing.
type UnknownCharacterError struct {
	Ref string
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("unknown character %q", e.Ref)
}

// IndexError is returned by NewCatalog when the moves given to it break the
// uniqueness of canonical keys and aliases within a character.
type IndexError struct {
	CharacterID string
	Key         string
	Reason      string
}

func (e *IndexError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("index %s: %s", e.CharacterID, e.Reason)
	}
	return fmt.Sprintf("index %s: key %q: %s", e.CharacterID, e.Key, e.Reason)
}
