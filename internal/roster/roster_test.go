package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := Default()

	testCases := []struct {
		ref      string
		expected string
	}{
		{ref: "ryu", expected: "ryu"},
		{ref: "RYU", expected: "ryu"},
		{ref: "Chun-Li", expected: "chunli"},
		{ref: "chun li", expected: "chunli"},
		{ref: "chun", expected: "chunli"},
		{ref: "DJ", expected: "deejay"},
		{ref: "dee_jay", expected: "deejay"},
		{ref: "E. Honda", expected: "ehonda"},
		{ref: "honda", expected: "ehonda"},
		{ref: "a.k.i.", expected: "aki"},
		{ref: "gouki", expected: "akuma"},
		{ref: "M. Bison", expected: "mbison"},
		{ref: "gief", expected: "zangief"},
		{ref: "sim", expected: "dhalsim"},
		{ref: "kim", expected: "kimberly"},
		{ref: "  ken ", expected: "ken"},
	}

	for _, test := range testCases {
		c, ok := r.Resolve(test.ref)
		require.True(t, ok, test.ref)
		require.Equal(t, test.expected, c.ID, test.ref)
	}

	_, ok := r.Resolve("sagat")
	require.False(t, ok)
	_, ok = r.Resolve("")
	require.False(t, ok)
}

func TestNew(t *testing.T) {
	r, err := New(
		Character{ID: "zeta", Name: "Zeta Person"},
		Character{ID: "alpha"},
	)
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 2)
	require.Equal(t, "alpha", all[0].ID)
	require.Equal(t, "alpha", all[0].Name)
	require.Equal(t, "Zeta_Person", all[1].PageID)

	_, err = New(Character{ID: "a"}, Character{ID: "a"})
	require.Error(t, err)
	_, err = New(Character{ID: "Upper"})
	require.Error(t, err)
	_, err = New(Character{ID: "x", Aliases: []string{"("}})
	require.Error(t, err)
}

func TestDefaultRoster(t *testing.T) {
	r := Default()
	require.Equal(t, 23, r.Len())

	c, ok := r.Get("deejay")
	require.True(t, ok)
	require.Equal(t, "Dee_Jay", c.PageID)
}

func TestSuggest(t *testing.T) {
	c, similarity := Default().Suggest("zangeif")
	require.Equal(t, "zangief", c.ID)
	require.Greater(t, similarity, 0.8)
}
