package notation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	testCases := []struct {
		raw       string
		canonical string
	}{
		{raw: "5LP", canonical: "5lp"},
		{raw: "  5lp ", canonical: "5lp"},
		{raw: "LP", canonical: "5lp"},
		{raw: "st.LP", canonical: "5lp"},
		{raw: "s.lp", canonical: "5lp"},
		{raw: "neutral lp", canonical: "5lp"},
		{raw: "standing light punch", canonical: "5lp"},
		{raw: "jab", canonical: "5lp"},
		{raw: "st. Jab", canonical: "5lp"},
		{raw: "2MK", canonical: "2mk"},
		{raw: "cr.MK", canonical: "2mk"},
		{raw: "c.mk", canonical: "2mk"},
		{raw: "crouching MK", canonical: "2mk"},
		{raw: "↓MK", canonical: "2mk"},
		{raw: "↓+MK", canonical: "2mk"},
		{raw: "236HP", canonical: "236hp"},
		{raw: "qcf+HP", canonical: "236hp"},
		{raw: "QCF HP", canonical: "236hp"},
		{raw: "↓↘→ + HP", canonical: "236hp"},
		{raw: "DP+P", canonical: "623p"},
		{raw: "SRK P", canonical: "623p"},
		{raw: "j.HP", canonical: "j.hp"},
		{raw: "jumping HP", canonical: "j.hp"},
		{raw: "nj.fierce", canonical: "j.hp"},
		{raw: "j.2MK", canonical: "j.2mk"},
		{raw: "MP+LP", canonical: "5lp+mp"},
		{raw: "LP+MP", canonical: "5lp+mp"},
		{raw: "5LP+5MP", canonical: "5lp+mp"},
		{raw: "LP+LP", canonical: "5lp"},
		{raw: "6HP+6HK", canonical: "6hk+hp"},
		{raw: "HP+6HK", canonical: "6hk+hp"},
		{raw: "Throw", canonical: "5lk+lp"},
		{raw: "Forward Throw", canonical: "6lk+lp"},
		{raw: "Back Throw", canonical: "4lk+lp"},
		{raw: "Drive Impact", canonical: "5hk+hp"},
		{raw: "DI", canonical: "5hk+hp"},
		{raw: "Drive Parry", canonical: "5mk+mp"},
		{raw: "Drive Reversal", canonical: "6hk+hp"},
		{raw: "66", canonical: "66"},
		{raw: "→→", canonical: "66"},
		{raw: "[4]6P", canonical: "[4]6p"},
		{raw: "[←]→P", canonical: "[4]6p"},
		{raw: "236236P", canonical: "236236p"},
		{raw: "qcfx2 P", canonical: "236236p"},
		{raw: "214P (Charged)", canonical: "214p(charged)"},
		{raw: "214P(charged)", canonical: "214p(charged)"},
		{raw: "236K > K", canonical: "236k>k"},
		{raw: "236K~K", canonical: "236k>k"},
		{raw: "5MP xx 236P", canonical: "5mp>236p"},
		{raw: "PPP", canonical: "5ppp"},
		{raw: "360P", canonical: "360p"},
		{raw: "SPD+P", canonical: "360p"},
	}

	for _, test := range testCases {
		n, err := Canonicalize(test.raw)
		require.NoError(t, err, test.raw)
		require.Equal(t, test.canonical, n.Canonical, test.raw)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"5LP", "cr.MK", "qcf+HP", "j.HP", "MP+LP", "Drive Impact", "66",
		"[4]6P", "214P (Charged)", "236K~K", "5MP xx 236P", "360P", "j.2MK",
	}
	for _, raw := range inputs {
		first, err := Canonicalize(raw)
		require.NoError(t, err, raw)

		second, err := Canonicalize(first.Canonical)
		require.NoError(t, err, raw)
		require.Equal(t, first.Canonical, second.Canonical, raw)
	}
}

func TestAliasesResolveToCanonical(t *testing.T) {
	inputs := []string{
		"5LP", "2MK", "236HP", "623P", "j.HP", "LP+MP", "66", "[4]6P",
		"214P (Charged)", "236K > K", "236K > 5K", "Drive Impact", "41236HK", "360P",
	}
	for _, raw := range inputs {
		n, err := Canonicalize(raw)
		require.NoError(t, err, raw)
		require.NotContains(t, n.Aliases, n.Canonical, raw)

		for _, alias := range n.Aliases {
			require.Equal(t, n.Canonical, Key(alias), "alias %q of %q", alias, raw)
		}
	}
}

func TestAliases(t *testing.T) {
	testCases := []struct {
		raw     string
		aliases []string
	}{
		{
			raw:     "5LP",
			aliases: []string{"jab", "lp", "s.lp", "st.jab", "st.lp"},
		},
		{
			raw:     "2MK",
			aliases: []string{"c.mk", "cr.mk", "↓+mk", "↓mk"},
		},
		{
			raw:     "236HP",
			aliases: []string{"qcf+fierce", "qcf+hp", "qcfhp", "↓↘→+hp", "↓↘→hp"},
		},
	}
	for _, test := range testCases {
		n, err := Canonicalize(test.raw)
		require.NoError(t, err)
		require.Equal(t, test.aliases, n.Aliases, test.raw)
	}
}

func TestCanonicalizeRejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Hadoken",
		"5LP?",
		"j.",
		"hp6",
		"2LP+6MP",
		"j.2LP+8LK",
		"→",
	}
	for _, raw := range inputs {
		_, err := Canonicalize(raw)
		if raw == "→" {
			require.NoError(t, err, "a direction on its own is a valid input")
			continue
		}
		var notationErr *Error
		require.True(t, errors.As(err, &notationErr), "expected notation error for %q", raw)
		require.Equal(t, raw, notationErr.Raw)
	}
}

func TestKey(t *testing.T) {
	require.Equal(t, "5lp", Key("st.LP"))
	require.Equal(t, "5lp+mp", Key("MP+LP"))
	require.Equal(t, "hadoken", Key("  Hadoken "))
	require.Equal(t, "214p#2", Key("214P#2"))
}
