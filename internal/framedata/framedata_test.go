package framedata

import (
	"errors"
	"strings"
	"testing"

	"framedata/internal/fields"
	"framedata/internal/roster"
	"framedata/internal/wikitable"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testRoster(t testing.TB) *roster.Roster {
	t.Helper()
	r, err := roster.New(
		roster.Character{ID: "ryu", Name: "Ryu"},
		roster.Character{ID: "chunli", Name: "Chun-Li", Aliases: []string{`chun([- ]?li)?`}},
	)
	require.NoError(t, err)
	return r
}

func normalize(tables ...wikitable.RawTable) []fields.Table {
	out := make([]fields.Table, len(tables))
	for i, t := range tables {
		out[i] = fields.Normalize(t)
	}
	return out
}

func TestBuildExample(t *testing.T) {
	result := Build("ryu", normalize(wikitable.RawTable{
		Caption: "Normals",
		Rows: [][]string{
			{"Move", "Startup", "Active", "Recovery", "On Hit", "On Block"},
			{"5LP", "6", "3", "8", "+2", "+5"},
		},
	}))
	require.Empty(t, result.Warnings)
	require.Len(t, result.Moves, 1)

	move := result.Moves[0]
	require.Equal(t, "ryu", move.CharacterID)
	require.Equal(t, "5lp", move.Canonical)
	require.Equal(t, "5LP", move.DisplayName)
	require.Equal(t, "5LP", move.Input)
	require.Equal(t, "Normals", move.Table)
	require.Equal(t, 1, move.Row)

	expected := map[fields.Field]fields.Value{
		fields.Startup:  {Kind: fields.Frames, Low: 6, High: 6, Raw: "6"},
		fields.Active:   {Kind: fields.Frames, Low: 3, High: 3, Raw: "3"},
		fields.Recovery: {Kind: fields.Frames, Low: 8, High: 8, Raw: "8"},
		fields.OnHit:    {Kind: fields.Advantage, Low: 2, High: 2, Raw: "+2"},
		fields.OnBlock:  {Kind: fields.Advantage, Low: 5, High: 5, Raw: "+5"},
	}
	for field, value := range expected {
		got, ok := move.Value(field)
		require.True(t, ok, field)
		require.Equal(t, value, got, field)
	}

	catalog, err := NewCatalog(testRoster(t), map[string][]Move{"ryu": result.Moves}, Report{})
	require.NoError(t, err)

	found, ok := catalog.FindMoveCharacter("ryu", "5LP")
	require.True(t, ok)
	diff := cmp.Diff(move, found)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestBuildWarnings(t *testing.T) {
	result := Build("ryu", normalize(
		wikitable.RawTable{
			Caption: "Normals",
			Rows: [][]string{
				{"Input", "Name", "Startup"},
				{"5LP", "Stand Light Punch", "4"},
				{"LP", "Stand Jab Again", "4"},
				{"Hadoken", "Fireball", "12"},
				{"", "Nothing", "1"},
				{"2MK", "Crouching Medium Kick", "eight"},
			},
		},
		wikitable.RawTable{
			Caption: "Navigation",
			Rows: [][]string{
				{"Characters"},
				{"Ken"},
			},
		},
	))

	canonicals := make([]string, len(result.Moves))
	for i, m := range result.Moves {
		canonicals[i] = m.Canonical
	}
	require.Equal(t, []string{"5lp", "5lp#2", "2mk"}, canonicals)
	require.Equal(t, "Stand Light Punch", result.Moves[0].DisplayName)
	require.Empty(t, result.Moves[1].Aliases, "every alias of the duplicate is taken")

	kinds := map[WarningKind]int{}
	for _, w := range result.Warnings {
		kinds[w.Kind]++
		require.Equal(t, "Normals", w.Table)
	}
	require.Equal(t, 1, kinds[WarningField], "unparsable startup")
	require.Equal(t, 2, kinds[WarningNotation], "unknown notation and empty input")
	// the canonical key plus the five aliases of "LP"
	require.Equal(t, 6, kinds[WarningCollision])

	catalog, err := NewCatalog(testRoster(t), map[string][]Move{"ryu": result.Moves}, Report{})
	require.NoError(t, err)

	testCases := []struct {
		query    string
		expected string
	}{
		{query: "5LP", expected: "5lp"},
		{query: "st.lp", expected: "5lp"},
		{query: "jab", expected: "5lp"},
		{query: "5lp#2", expected: "5lp#2"},
		{query: "cr.MK", expected: "2mk"},
		{query: "↓+MK", expected: "2mk"},
		{query: "crouching medium", expected: "2mk"},
		{query: "jab again", expected: "5lp#2"},
	}
	for _, test := range testCases {
		m, ok := catalog.FindMove("ryu", test.query)
		require.True(t, ok, test.query)
		require.Equal(t, test.expected, m.Canonical, test.query)
	}

	_, ok := catalog.FindMove("ryu", "236P")
	require.False(t, ok)
	_, ok = catalog.FindMove("ryu", "")
	require.False(t, ok)
	_, ok = catalog.FindMove("ken", "5LP")
	require.False(t, ok)
}

func TestBuildAliasesFindOwnMove(t *testing.T) {
	result := Build("ryu", normalize(
		wikitable.RawTable{
			Caption: "Normals",
			Rows: [][]string{
				{"Input", "Name", "Startup"},
				{"5LP", "Stand Light Punch", "4"},
				{"LP", "Jab", "4"},
				{"st.LP", "Another Jab", "4"},
				{"2MK", "Crouching Medium Kick", "8"},
				{"cr.MK", "Sweep Bait", "8"},
			},
		},
		wikitable.RawTable{
			Caption: "Specials",
			Rows: [][]string{
				{"Input", "Startup", "On Block"},
				{"236HP", "14", "-6"},
				{"qcf+HP", "14", "-6"},
				{"214P (Charged)", "28", "+2"},
				{"214P", "16", "-2"},
				{"41236HK", "12", "-24"},
			},
		},
		wikitable.RawTable{
			Caption: "Drive",
			Rows: [][]string{
				{"Command", "Startup"},
				{"6HP+HK", "20"},
				{"Drive Reversal", "20"},
				{"HP+HK", "26"},
				{"Drive Impact", "26"},
			},
		},
	))
	require.NotEmpty(t, result.Warnings)

	catalog, err := NewCatalog(testRoster(t), map[string][]Move{"ryu": result.Moves}, Report{})
	require.NoError(t, err)

	moves, err := catalog.Get("ryu")
	require.NoError(t, err)
	require.Len(t, moves, 14)

	for _, m := range moves {
		found, ok := catalog.FindMove("ryu", m.Canonical)
		require.True(t, ok, m.Canonical)
		require.Equal(t, m.Canonical, found.Canonical, "canonical %q", m.Canonical)

		for _, alias := range m.Aliases {
			found, ok := catalog.FindMove("ryu", alias)
			require.True(t, ok, alias)
			require.Equal(t, m.Canonical, found.Canonical, "alias %q of %q", alias, m.Canonical)

			found, _ = catalog.FindMove("ryu", strings.ToUpper(alias))
			require.Equal(t, m.Canonical, found.Canonical, "alias %q of %q", alias, m.Canonical)
		}
	}

	testCases := []struct {
		query    string
		expected string
	}{
		{query: "Drive Reversal", expected: "6hk+hp"},
		{query: "6hk+hp#2", expected: "6hk+hp#2"},
		{query: "cr.mk", expected: "2mk"},
		{query: "2mk#2", expected: "2mk#2"},
		{query: "qcf+hp", expected: "236hp"},
		{query: "214p(charged)", expected: "214p(charged)"},
		{query: "214p", expected: "214p"},
	}
	for _, test := range testCases {
		m, ok := catalog.FindMove("ryu", test.query)
		require.True(t, ok, test.query)
		require.Equal(t, test.expected, m.Canonical, test.query)
	}
}

func TestBuildRequiresCharacter(t *testing.T) {
	require.Panics(t, func() {
		Build("", nil)
	})
}

func TestCatalog(t *testing.T) {
	r := testRoster(t)
	moves := map[string][]Move{
		"chunli": {
			{CharacterID: "chunli", Canonical: "5lp", Aliases: []string{"jab"}, DisplayName: "Stand LP"},
			{CharacterID: "chunli", Canonical: "236p", DisplayName: "Kikoken"},
		},
		"ryu": {
			{CharacterID: "ryu", Canonical: "236p", DisplayName: "Hadoken"},
		},
	}
	report := Report{
		Failures: map[string]error{"ken": errors.New("boom")},
	}

	catalog, err := NewCatalog(r, moves, report)
	require.NoError(t, err)
	require.Equal(t, []string{"chunli", "ryu"}, catalog.Characters())
	require.Equal(t, 3, catalog.Len())
	require.Len(t, catalog.Report().Failures, 1)

	m, ok := catalog.FindMoveCharacter("Chun Li", "qcf+P")
	require.True(t, ok)
	require.Equal(t, "Kikoken", m.DisplayName)

	m, ok = catalog.FindMoveCharacter("CHUN-LI", "JAB")
	require.True(t, ok)
	require.Equal(t, "5lp", m.Canonical)

	_, ok = catalog.FindMoveCharacter("nobody", "5lp")
	require.False(t, ok)

	list, err := catalog.Get("ryu")
	require.NoError(t, err)
	list[0].DisplayName = "changed"
	again, err := catalog.Get("ryu")
	require.NoError(t, err)
	require.Equal(t, "Hadoken", again[0].DisplayName, "Get must return a copy")

	_, err = catalog.Get("ken")
	var unknown *UnknownCharacterError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "ken", unknown.Ref)

	// lookups do not change anything
	first, _ := catalog.FindMove("chunli", "kiko")
	second, _ := catalog.FindMove("chunli", "kiko")
	require.Equal(t, first, second)
	require.Equal(t, "236p", first.Canonical)
}

func TestSuggest(t *testing.T) {
	moves := map[string][]Move{
		"ryu": {
			{CharacterID: "ryu", Canonical: "5lp", DisplayName: "5LP"},
			{CharacterID: "ryu", Canonical: "2mk", DisplayName: "2MK"},
			{CharacterID: "ryu", Canonical: "236p", DisplayName: "Hadoken"},
		},
	}
	catalog, err := NewCatalog(testRoster(t), moves, Report{})
	require.NoError(t, err)

	suggestions := catalog.Suggest("ryu", "hadokn", 1)
	require.Len(t, suggestions, 1)
	require.Equal(t, "236p", suggestions[0].Canonical)

	require.Len(t, catalog.Suggest("ryu", "x", 10), 3)
	require.Empty(t, catalog.Suggest("ryu", "x", 0))
	require.Empty(t, catalog.Suggest("ken", "x", 3))
}

func TestNewCatalogRejects(t *testing.T) {
	testCases := []struct {
		name  string
		moves map[string][]Move
	}{
		{
			name: "duplicate canonical",
			moves: map[string][]Move{"ryu": {
				{CharacterID: "ryu", Canonical: "5lp"},
				{CharacterID: "ryu", Canonical: "5lp"},
			}},
		},
		{
			name: "alias overlaps canonical",
			moves: map[string][]Move{"ryu": {
				{CharacterID: "ryu", Canonical: "5lp"},
				{CharacterID: "ryu", Canonical: "2lp", Aliases: []string{"5LP"}},
			}},
		},
		{
			name: "aliases overlap",
			moves: map[string][]Move{"ryu": {
				{CharacterID: "ryu", Canonical: "5lp", Aliases: []string{"jab"}},
				{CharacterID: "ryu", Canonical: "2lp", Aliases: []string{"jab"}},
			}},
		},
		{
			name:  "unknown character",
			moves: map[string][]Move{"ken": {{CharacterID: "ken", Canonical: "5lp"}}},
		},
		{
			name:  "misfiled move",
			moves: map[string][]Move{"ryu": {{CharacterID: "chunli", Canonical: "5lp"}}},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewCatalog(testRoster(t), test.moves, Report{})
			var indexErr *IndexError
			require.True(t, errors.As(err, &indexErr), "got %v", err)
		})
	}
}
