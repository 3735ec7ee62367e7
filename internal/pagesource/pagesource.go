// Package pagesource defines where the raw frame data page of a character comes from.
package pagesource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"framedata/internal/roster"
)

// Source returns the raw content (rendered HTML or wiki markup) of a character's frame
// data page. Implementations must be safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context, character roster.Character) (string, error)
}

// Func adapts a function to a Source.
type Func func(ctx context.Context, character roster.Character) (string, error)

func (f Func) Fetch(ctx context.Context, character roster.Character) (string, error) {
	return f(ctx, character)
}

// FetchKind classifies a FetchError.
type FetchKind int

const (
	NotFound FetchKind = iota
	Network
	RateLimited
)

func (k FetchKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Network:
		return "network"
	case RateLimited:
		return "rate limited"
	}
	return fmt.Sprintf("fetch kind %d", int(k))
}

// FetchError is returned by a Source when a page could not be retrieved.
type FetchError struct {
	CharacterID string
	Kind        FetchKind
	Err         error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.CharacterID, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s: %s", e.CharacterID, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Dir reads pages saved on disk as "<id>.html" or "<id>.wiki".
type Dir string

var extensions = []string{".html", ".wiki"}

// Fetch returns the first of "<dir>/<id>.html" and "<dir>/<id>.wiki" that exists.
func (d Dir) Fetch(ctx context.Context, character roster.Character) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for _, ext := range extensions {
		contents, err := os.ReadFile(filepath.Join(string(d), character.ID+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", &FetchError{CharacterID: character.ID, Kind: Network, Err: err}
		}
		return string(contents), nil
	}

	return "", &FetchError{
		CharacterID: character.ID,
		Kind:        NotFound,
		Err:         fmt.Errorf("no page for %s in %s", character.ID, string(d)),
	}
}
