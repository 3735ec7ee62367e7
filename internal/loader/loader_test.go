package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"framedata/internal/components/telemetry"
	"framedata/internal/fields"
	"framedata/internal/framedata"
	"framedata/internal/pagesource"
	"framedata/internal/roster"
	"framedata/internal/wikitable"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const ryuPage = `<h2>Normals</h2>
<table>
<tr><th>Move</th><th>Startup</th><th>Active</th><th>Recovery</th><th>On Hit</th><th>On Block</th></tr>
<tr><td>5LP</td><td>6</td><td>3</td><td>8</td><td>+2</td><td>+5</td></tr>
<tr><td>2MK</td><td>8</td><td>3</td><td>17</td><td>+2</td><td>-5</td></tr>
</table>`

const kenPage = `{|
! Input !! Startup
|-
| Shoryuken!! || 3
|}`

func testRoster(t testing.TB) *roster.Roster {
	t.Helper()
	r, err := roster.New(
		roster.Character{ID: "chun-li", Name: "Chun-Li"},
		roster.Character{ID: "juri", Name: "Juri"},
		roster.Character{ID: "ken", Name: "Ken"},
		roster.Character{ID: "ryu", Name: "Ryu"},
	)
	require.NoError(t, err)
	return r
}

var testSource = pagesource.Func(func(ctx context.Context, c roster.Character) (string, error) {
	switch c.ID {
	case "ryu":
		return ryuPage, nil
	case "ken":
		return kenPage, nil
	case "juri":
		return "<p>no frame data yet</p>", nil
	}
	return "", &pagesource.FetchError{
		CharacterID: c.ID,
		Kind:        pagesource.Network,
		Err:         errors.New("connection reset"),
	}
})

func TestLoadAll(t *testing.T) {
	tel := telemetry.NewRecorder()
	loader := New(testRoster(t), testSource, tel, Options{Concurrency: 2})

	catalog, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"ryu"}, catalog.Characters())
	require.Equal(t, 2, catalog.Len())

	move, ok := catalog.FindMoveCharacter("ryu", "5LP")
	require.True(t, ok)
	require.Equal(t, "5lp", move.Canonical)

	report := catalog.Report()
	require.Len(t, report.Failures, 3)

	testCases := []struct {
		characterID string
		stage       State
		check       func(t *testing.T, err error)
	}{
		{
			characterID: "chun-li",
			stage:       Fetching,
			check: func(t *testing.T, err error) {
				var fetchErr *pagesource.FetchError
				require.True(t, errors.As(err, &fetchErr))
				require.Equal(t, pagesource.Network, fetchErr.Kind)
			},
		},
		{
			characterID: "juri",
			stage:       Extracting,
			check: func(t *testing.T, err error) {
				var extractErr *wikitable.ExtractionError
				require.True(t, errors.As(err, &extractErr))
			},
		},
		{
			characterID: "ken",
			stage:       Normalizing,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrNoMoves)
			},
		},
	}
	for _, test := range testCases {
		err := report.Failures[test.characterID]
		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr), test.characterID)
		require.Equal(t, test.characterID, stageErr.CharacterID)
		require.Equal(t, test.stage, stageErr.Stage, test.characterID)
		test.check(t, err)
	}

	require.NotEmpty(t, report.Warnings["ken"], "the rejected notation is a warning")
	require.Equal(t, framedata.WarningNotation, report.Warnings["ken"][0].Kind)

	moves, ok := tel.Count("loader: load.moves")
	require.True(t, ok)
	require.Equal(t, int64(2), moves)
	failed, _ := tel.Count("loader: load.failed")
	require.Equal(t, int64(3), failed)
	require.Len(t, tel.Reports("broken"), 3)
}

// one table per move, variants of an input told apart by the heading above the table
const movePage = `<div class="mw-parser-output">
<h2>Special Moves</h2>
<section class="section-collapsible">
<h5><span class="mw-headline">214P</span></h5>
<table class="wikitable">
<tr><th rowspan="4"><div><p><span>214P</span></p><div>Hashogeki</div></div></th><th><a href="/File:Ryu_214P.png"><img src="Ryu_214P.png"></a></th><th>Damage</th><th>Startup</th><th>Active</th></tr>
<tr><td>600</td><td>16</td><td>2</td></tr>
<tr><th>Hit Advantage</th><th>Block Advantage</th></tr>
<tr><td>+32 KD</td><td>-2</td></tr>
</table>
</section>
<section class="section-collapsible">
<h5><span class="mw-headline">214P(charged)</span></h5>
<table class="wikitable">
<tr><th rowspan="4"><div><p><span>214P</span></p><div>Hashogeki (Charged)</div></div></th><th><a href="/File:Ryu_214P_Charged.png"><img src="Ryu_214P_Charged.png"></a></th><th>Damage</th><th>Startup</th><th>Active</th></tr>
<tr><td>800</td><td>28</td><td>2</td></tr>
<tr><th>Hit Advantage</th><th>Block Advantage</th></tr>
<tr><td>+40 KD</td><td>+2</td></tr>
</table>
</section>
</div>`

func TestLoadMoveBlocks(t *testing.T) {
	source := pagesource.Func(func(ctx context.Context, c roster.Character) (string, error) {
		return movePage, nil
	})
	loader := New(testRoster(t), source, telemetry.NewRecorder(), Options{})

	catalog, err := loader.Load(context.Background(), "ryu")
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())
	require.Empty(t, catalog.Report().Warnings["ryu"])

	testCases := []struct {
		query     string
		canonical string
		name      string
		startup   int
	}{
		{query: "214P", canonical: "214p", name: "Hashogeki", startup: 16},
		{query: "214P(charged)", canonical: "214p(charged)", name: "Hashogeki (Charged)", startup: 28},
		{query: "214p (Charged)", canonical: "214p(charged)", name: "Hashogeki (Charged)", startup: 28},
	}
	for _, test := range testCases {
		move, ok := catalog.FindMove("ryu", test.query)
		require.True(t, ok, test.query)
		require.Equal(t, test.canonical, move.Canonical, test.query)
		require.Equal(t, test.name, move.DisplayName, test.query)
		require.Equal(t, "Special Moves", move.Table, test.query)

		startup, ok := move.Value(fields.Startup)
		require.True(t, ok, test.query)
		require.Equal(t, fields.Frames, startup.Kind, test.query)
		require.Equal(t, test.startup, startup.Low, test.query)

		active, ok := move.Value(fields.Active)
		require.True(t, ok, test.query)
		require.Equal(t, 2, active.Low, test.query)
	}
}

func TestLoadAllDeterministic(t *testing.T) {
	load := func() []framedata.Move {
		loader := New(testRoster(t), testSource, telemetry.NewRecorder(), Options{Concurrency: 3})
		catalog, err := loader.LoadAll(context.Background())
		require.NoError(t, err)
		moves, err := catalog.Get("ryu")
		require.NoError(t, err)
		return moves
	}

	first := load()
	for i := 0; i < 5; i++ {
		diff := cmp.Diff(first, load())
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestLoadAllFailed(t *testing.T) {
	r, err := roster.New(
		roster.Character{ID: "chun-li"},
		roster.Character{ID: "juri"},
	)
	require.NoError(t, err)

	loader := New(r, testSource, telemetry.NewRecorder(), Options{})
	catalog, err := loader.LoadAll(context.Background())
	require.Nil(t, catalog)

	var allFailed *AllFailedError
	require.True(t, errors.As(err, &allFailed))
	require.Len(t, allFailed.Failures, 2)

	// the individual failures stay reachable through the aggregate
	var fetchErr *pagesource.FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, "chun-li", fetchErr.CharacterID)
}

func TestLoadAllCanceled(t *testing.T) {
	r, err := roster.New(
		roster.Character{ID: "ken"},
		roster.Character{ID: "ryu"},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kenStarted := make(chan struct{})
	ryuBuilt := make(chan struct{})
	var once sync.Once

	source := pagesource.Func(func(ctx context.Context, c roster.Character) (string, error) {
		if c.ID == "ryu" {
			return ryuPage, nil
		}
		close(kenStarted)
		<-ctx.Done()
		return "", &pagesource.FetchError{CharacterID: c.ID, Kind: pagesource.Network, Err: ctx.Err()}
	})
	loader := New(r, source, telemetry.NewRecorder(), Options{
		Concurrency: 2,
		Progress: func(id string, state State) {
			if id == "ryu" && state == Built {
				once.Do(func() { close(ryuBuilt) })
			}
		},
	})

	go func() {
		<-kenStarted
		<-ryuBuilt
		cancel()
	}()

	catalog, err := loader.LoadAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, IsCanceled(err))
	require.NotNil(t, catalog)
	require.Equal(t, []string{"ryu"}, catalog.Characters())
	require.Empty(t, catalog.Report().Failures, "a canceled character is not a failure")
}

func TestLoad(t *testing.T) {
	var mutex sync.Mutex
	var transitions []string
	loader := New(testRoster(t), testSource, telemetry.NewRecorder(), Options{
		Progress: func(id string, state State) {
			mutex.Lock()
			defer mutex.Unlock()
			transitions = append(transitions, fmt.Sprintf("%s:%s", id, state))
		},
	})
	ctx := context.Background()

	catalog, err := loader.Load(ctx, "RYU")
	require.NoError(t, err)
	require.Equal(t, []string{"ryu"}, catalog.Characters())
	require.Equal(t, []string{
		"ryu:fetching", "ryu:extracting", "ryu:normalizing", "ryu:built",
	}, transitions)

	_, err = loader.Load(ctx, "Chun-Li")
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, Fetching, stageErr.Stage)
	require.Equal(t, "chun-li", stageErr.CharacterID)

	_, err = loader.Load(ctx, "nobody")
	var unknown *framedata.UnknownCharacterError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "nobody", unknown.Ref)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "normalizing", Normalizing.String())
	require.True(t, Failed.Terminal())
	require.False(t, Fetching.Terminal())
}
