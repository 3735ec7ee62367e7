package framedata

import (
	"slices"
	"sort"
	"strings"

	"framedata/internal/notation"
	"framedata/internal/roster"

	"github.com/antzucaro/matchr"
)

// Catalog is the read-only result of a load: every built character's moves and an
// index from lowercase keys to moves.
type Catalog struct {
	roster *roster.Roster
	moves  map[string][]Move
	// character id -> lowercase canonical key or alias -> move position
	index  map[string]map[string]int
	report Report
	count  int
}

// NewCatalog indexes moves, which is keyed by character id.
//
// It returns an *IndexError if a character is not in the roster, if a move is filed
// under another character, or if a canonical key or alias is shared by two moves of
// the same character.
func NewCatalog(r *roster.Roster, moves map[string][]Move, report Report) (*Catalog, error) {
	c := &Catalog{
		roster: r,
		moves:  make(map[string][]Move, len(moves)),
		index:  make(map[string]map[string]int, len(moves)),
		report: report.clone(),
	}

	for characterID, list := range moves {
		if _, ok := r.Get(characterID); !ok {
			return nil, &IndexError{CharacterID: characterID, Reason: "character is not in the roster"}
		}

		index := make(map[string]int, len(list)*4)
		claim := func(key string, position int) error {
			key = strings.ToLower(key)
			if owner, taken := index[key]; taken && owner != position {
				return &IndexError{
					CharacterID: characterID,
					Key:         key,
					Reason:      "shared by " + list[owner].Canonical + " and " + list[position].Canonical,
				}
			}
			index[key] = position
			return nil
		}

		for i, m := range list {
			if m.CharacterID != characterID {
				return nil, &IndexError{
					CharacterID: characterID,
					Key:         m.Canonical,
					Reason:      "move belongs to " + m.CharacterID,
				}
			}
			if m.Canonical == "" {
				return nil, &IndexError{CharacterID: characterID, Reason: "move has no canonical key"}
			}
			err := claim(m.Canonical, i)
			if err != nil {
				return nil, err
			}
			for _, alias := range m.Aliases {
				err := claim(alias, i)
				if err != nil {
					return nil, err
				}
			}
		}

		c.moves[characterID] = slices.Clone(list)
		c.index[characterID] = index
		c.count += len(list)
	}

	return c, nil
}

// Get returns a copy of the moves of a character, in page order.
func (c *Catalog) Get(characterID string) ([]Move, error) {
	list, ok := c.moves[characterID]
	if !ok {
		return nil, &UnknownCharacterError{Ref: characterID}
	}
	return slices.Clone(list), nil
}

// FindMove looks a move up by canonical key or alias (in any notation the
// canonicalizer understands), falling back to the first move whose display name
// contains the query. The match is case-insensitive.
func (c *Catalog) FindMove(characterID, query string) (Move, bool) {
	list := c.moves[characterID]
	index := c.index[characterID]
	query = strings.TrimSpace(query)
	if len(list) == 0 || query == "" {
		return Move{}, false
	}

	if i, ok := index[notation.Key(query)]; ok {
		return list[i], true
	}
	lower := strings.ToLower(query)
	if i, ok := index[lower]; ok {
		return list[i], true
	}
	for _, m := range list {
		if strings.Contains(strings.ToLower(m.DisplayName), lower) {
			return m, true
		}
	}
	return Move{}, false
}

// FindMoveCharacter is FindMove with the character given as any reference the roster
// can resolve ("Chun-Li", "chun li", "chunli").
func (c *Catalog) FindMoveCharacter(ref, query string) (Move, bool) {
	character, ok := c.roster.Resolve(ref)
	if !ok {
		return Move{}, false
	}
	return c.FindMove(character.ID, query)
}

// Suggest returns up to n moves of a character ordered by how similar they are to
// query, for use when FindMove finds nothing.
func (c *Catalog) Suggest(characterID, query string, n int) []Move {
	list := c.moves[characterID]
	if n <= 0 || len(list) == 0 {
		return nil
	}

	lower := strings.ToLower(strings.TrimSpace(query))
	key := notation.Key(query)

	type scored struct {
		move  Move
		score float64
	}
	candidates := make([]scored, len(list))
	for i, m := range list {
		score := max(
			matchr.JaroWinkler(key, m.Canonical, false),
			matchr.JaroWinkler(lower, strings.ToLower(m.DisplayName), false),
		)
		candidates[i] = scored{move: m, score: score}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]Move, 0, min(n, len(candidates)))
	for _, candidate := range candidates[:min(n, len(candidates))] {
		out = append(out, candidate.move)
	}
	return out
}

// Characters returns the ids of every character with moves, sorted.
func (c *Catalog) Characters() []string {
	ids := make([]string, 0, len(c.moves))
	for id := range c.moves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Roster returns the roster the catalog resolves character references with.
func (c *Catalog) Roster() *roster.Roster {
	return c.roster
}

// Report returns the failures and warnings of the load that built the catalog.
func (c *Catalog) Report() Report {
	return c.report.clone()
}

// Len returns the number of moves across all characters.
func (c *Catalog) Len() int {
	return c.count
}
