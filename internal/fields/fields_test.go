package fields

import (
	"testing"

	"framedata/internal/wikitable"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Value
	}{
		{raw: "6", expected: Value{Kind: Frames, Low: 6, High: 6, Raw: "6"}},
		{raw: " 12 ", expected: Value{Kind: Frames, Low: 12, High: 12, Raw: "12"}},
		{raw: "6-8", expected: Value{Kind: Frames, Low: 6, High: 8, Raw: "6-8"}},
		{raw: "6 ~ 8", expected: Value{Kind: Frames, Low: 6, High: 8, Raw: "6 ~ 8"}},
		{raw: "+2", expected: Value{Kind: Advantage, Low: 2, High: 2, Raw: "+2"}},
		{raw: "-5", expected: Value{Kind: Advantage, Low: -5, High: -5, Raw: "-5"}},
		{raw: "−3", expected: Value{Kind: Advantage, Low: -3, High: -3, Raw: "−3"}},
		{raw: "-2~+1", expected: Value{Kind: Advantage, Low: -2, High: 1, Raw: "-2~+1"}},
		{
			raw:      "+3~KND",
			expected: Value{Kind: Advantage, Low: 3, High: 3, Annotation: "KND", Raw: "+3~KND"},
		},
		{
			raw:      "-2(KD)",
			expected: Value{Kind: Advantage, Low: -2, High: -2, Annotation: "KD", Raw: "-2(KD)"},
		},
		{
			raw:      "+26 HKD",
			expected: Value{Kind: Advantage, Low: 26, High: 26, Annotation: "HKD", Raw: "+26 HKD"},
		},
		{raw: "yes", expected: Value{Kind: Flag, Flag: true, Raw: "yes"}},
		{raw: "False", expected: Value{Kind: Flag, Flag: false, Raw: "False"}},
		{raw: "✓", expected: Value{Kind: Flag, Flag: true, Raw: "✓"}},
		{raw: "", expected: Value{Kind: Missing}},
		{raw: "-", expected: Value{Kind: Missing, Raw: "-"}},
		{raw: "—", expected: Value{Kind: Missing, Raw: "—"}},
		{raw: "N/A", expected: Value{Kind: Missing, Raw: "N/A"}},
		{raw: "Mid", expected: Value{Kind: Text, Raw: "Mid"}},
		{raw: "6+", expected: Value{Kind: Text, Raw: "6+"}},
		{raw: "8-6", expected: Value{Kind: Text, Raw: "8-6"}},
	}

	for _, test := range testCases {
		diff := cmp.Diff(test.expected, Parse(test.raw))
		if diff != "" {
			t.Errorf("Parse(%q): %s", test.raw, diff)
		}
	}
}

func TestValueString(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{raw: "6", expected: "6"},
		{raw: "6~8", expected: "6-8"},
		{raw: "+3~KND", expected: "+3 KND"},
		{raw: "-2 ~ +1", expected: "-2~+1"},
		{raw: "+0", expected: "+0"},
		{raw: "n/a", expected: "-"},
		{raw: "yes", expected: "yes"},
		{raw: "Mid", expected: "Mid"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Parse(test.raw).String(), test.raw)
	}
}

func TestKindText(t *testing.T) {
	for _, kind := range []Kind{Missing, Frames, Advantage, Text, Flag} {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var decoded Kind
		require.NoError(t, decoded.UnmarshalText(text))
		require.Equal(t, kind, decoded)
	}

	var k Kind
	require.Error(t, k.UnmarshalText([]byte("bogus")))
}

func TestLookup(t *testing.T) {
	testCases := []struct {
		header   string
		expected Field
		ok       bool
	}{
		{header: "On Block", expected: OnBlock, ok: true},
		{header: "Block Adv.", expected: OnBlock, ok: true},
		{header: "OB", expected: OnBlock, ok: true},
		{header: "Guard adv", expected: OnBlock, ok: true},
		{header: "on-hit", expected: OnHit, ok: true},
		{header: "Startup", expected: Startup, ok: true},
		{header: "Drive Dmg (Block)", expected: DriveDamageBlock, ok: true},
		{header: "After DR Hit", expected: AfterDRHit, ok: true},
		{header: "Cancel", expected: Cancel, ok: true},
		{header: "Frame Meter", expected: Unmapped, ok: false},
		{header: "", expected: Unmapped, ok: false},
	}
	for _, test := range testCases {
		field, ok := Lookup(test.header)
		require.Equal(t, test.expected, field, test.header)
		require.Equal(t, test.ok, ok, test.header)
	}
}

func TestNormalize(t *testing.T) {
	raw := wikitable.RawTable{
		Index:   2,
		Caption: "Normals",
		Rows: [][]string{
			{"Move", "Startup", "Active", "Recovery", "On Hit", "On Block"},
			{"5LP", "6", "3", "8", "+2", "+5"},
		},
	}

	table := Normalize(raw)
	require.Equal(t, "Normals", table.Caption)
	require.Equal(t, 2, table.Index)
	require.Equal(t, []Field{Move, Startup, Active, Recovery, OnHit, OnBlock}, table.Headers)
	require.Empty(t, table.Warnings)
	require.Len(t, table.Rows, 1)

	expected := Row{
		Index: 1,
		Cells: map[Field]Value{
			Move:     {Kind: Text, Raw: "5LP"},
			Startup:  {Kind: Frames, Low: 6, High: 6, Raw: "6"},
			Active:   {Kind: Frames, Low: 3, High: 3, Raw: "3"},
			Recovery: {Kind: Frames, Low: 8, High: 8, Raw: "8"},
			OnHit:    {Kind: Advantage, Low: 2, High: 2, Raw: "+2"},
			OnBlock:  {Kind: Advantage, Low: 5, High: 5, Raw: "+5"},
		},
	}
	diff := cmp.Diff(expected, table.Rows[0])
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestNormalizeIrregularRows(t *testing.T) {
	raw := wikitable.RawTable{
		Rows: [][]string{
			{"Input", "Startup", "Frame Meter", "Startup", "On Block"},
			{"2MK", "8"},
			{"5HP", "10", "img", "11", "-3", "overflow"},
			{"236P", "13 (charged)", "", "", "-6"},
		},
	}

	table := Normalize(raw)
	require.Equal(t, []Field{Input, Startup, Unmapped, Unmapped, OnBlock}, table.Headers)
	require.Equal(t, []string{"Input", "Startup", "Frame Meter", "Startup", "On Block"}, table.HeaderText)
	require.Len(t, table.Rows, 3)

	short := table.Rows[0]
	require.Equal(t, Value{Kind: Missing}, short.Cells[OnBlock])
	require.Equal(t, Value{Kind: Frames, Low: 8, High: 8, Raw: "8"}, short.Cells[Startup])
	require.Empty(t, short.Extra)

	long := table.Rows[1]
	require.Equal(t, []Extra{
		{Header: "Frame Meter", Value: Value{Kind: Text, Raw: "img"}},
		{Header: "Startup", Value: Value{Kind: Frames, Low: 11, High: 11, Raw: "11"}},
		{Header: "", Value: Value{Kind: Text, Raw: "overflow"}},
	}, long.Extra)

	expectedWarnings := []Warning{
		{
			Header:  "Startup",
			Field:   Startup,
			Message: "duplicate column for startup, kept as extra",
		},
		{
			Row:     3,
			Header:  "Startup",
			Field:   Startup,
			Raw:     "13 (charged)",
			Message: "could not parse startup",
		},
	}
	diff := cmp.Diff(expectedWarnings, table.Warnings)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestNormalizeTextFieldsNeverWarn(t *testing.T) {
	raw := wikitable.RawTable{
		Rows: [][]string{
			{"Input", "Guard", "Cancel", "Notes", "Invuln"},
			{"623P", "Mid", "SA", "Anti-air", "1-9 Full"},
		},
	}
	table := Normalize(raw)
	require.Empty(t, table.Warnings)
	require.False(t, table.Has(Startup))
	require.True(t, table.Has(Guard))
	require.True(t, table.FrameData())
}
