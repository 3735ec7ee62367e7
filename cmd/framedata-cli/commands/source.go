package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"framedata/internal/components/telemetry"
	"framedata/internal/framedata"
	"framedata/internal/loader"
	"framedata/internal/pagesource"
	"framedata/internal/roster"
	"framedata/internal/scrapers/supercombo"
	"framedata/internal/store"

	"github.com/dgraph-io/badger/v4"
)

// openSource returns the source pages are read from and a function releasing it.
func openSource() (pagesource.Source, func(), error) {
	if config.PagesDir != "" {
		slog.Info("reading pages from disk", "dir", config.PagesDir)
		return pagesource.Dir(config.PagesDir), func() {}, nil
	}

	dumpDir := config.RestyDumpDir
	if dumpDir == "" && *verbose {
		dumpDir = ".dev/resty/supercombo"
	}
	setRestyDump(dumpDir)

	var cache *badger.DB
	if config.CacheDir != "" {
		var err error
		cache, err = badger.Open(badger.DefaultOptions(config.CacheDir).WithLogger(nil))
		if err != nil {
			return nil, nil, fmt.Errorf("open page cache: %w", err)
		}
	}
	release := func() {
		if cache == nil {
			return
		}
		err := cache.Close()
		if err != nil {
			slog.Warn("failed to close page cache", "err", err)
		}
	}

	client, err := supercombo.NewClient(supercombo.ClientOptions{
		BaseUrl:           config.BaseUrl,
		RequestsPerSecond: config.RequestsPerSecond,
		Cache:             cache,
		CacheTTL:          time.Duration(config.CacheTTLHours) * time.Hour,
	}, telemetry.SlogAPI{})
	if err != nil {
		release()
		return nil, nil, err
	}
	return client, release, nil
}

// selectRoster narrows r down to the characters refs name, all of r if there are none.
func selectRoster(r *roster.Roster, refs []string) (*roster.Roster, error) {
	if len(refs) == 0 {
		return r, nil
	}

	seen := map[string]bool{}
	var selected []roster.Character
	for _, ref := range refs {
		character, ok := r.Resolve(ref)
		if !ok {
			return nil, unknownCharacter(r, ref)
		}
		if seen[character.ID] {
			continue
		}
		seen[character.ID] = true
		selected = append(selected, character)
	}
	return roster.New(selected...)
}

func unknownCharacter(r *roster.Roster, ref string) error {
	err := &framedata.UnknownCharacterError{Ref: ref}
	suggestion, similarity := r.Suggest(ref)
	if similarity < 0.7 {
		return err
	}
	return fmt.Errorf("%w, did you mean %q?", err, suggestion.Name)
}

// loadCatalog scrapes the characters refs name. A load cut short by a signal still
// returns what was built before it.
func loadCatalog(ctx context.Context, refs []string) (*framedata.Catalog, error) {
	full, err := config.roster()
	if err != nil {
		return nil, err
	}
	r, err := selectRoster(full, refs)
	if err != nil {
		return nil, err
	}

	source, release, err := openSource()
	if err != nil {
		return nil, err
	}
	defer release()

	l := loader.New(r, source, telemetry.SlogAPI{}, loader.Options{
		Concurrency: config.Concurrency,
		Progress: func(characterID string, state loader.State) {
			slog.Debug("load progress", "character", characterID, "state", state.String())
		},
	})

	t1 := time.Now()
	catalog, err := l.LoadAll(ctx)
	if loader.IsCanceled(err) && catalog != nil {
		slog.Warn("load canceled, keeping the characters built so far", "characters", len(catalog.Characters()))
		return catalog, nil
	}
	if err != nil {
		return nil, err
	}
	slog.Info("load finished", "seconds", time.Since(t1).Seconds(), "moves", catalog.Len())
	return catalog, nil
}

func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open(store.DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return db, nil
}

// openCatalog reads the catalog saved at path, it returns os.ErrNotExist if nothing
// was saved there yet.
func openCatalog(ctx context.Context, path string) (*framedata.Catalog, error) {
	_, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	r, err := config.roster()
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	catalog, err := store.Open(ctx, db, r)
	if err != nil {
		return nil, err
	}
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("%s holds no moves: %w", path, os.ErrNotExist)
	}
	return catalog, nil
}

// catalogFor opens the saved catalog if there is one, otherwise it loads refs.
func catalogFor(ctx context.Context, dbPath string, refs []string) (*framedata.Catalog, error) {
	if dbPath != "" {
		catalog, err := openCatalog(ctx, dbPath)
		if err == nil {
			slog.Debug("using saved catalog", "db", dbPath)
			return catalog, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		slog.Info("nothing saved yet, loading from the wiki", "db", dbPath)
	}
	return loadCatalog(ctx, refs)
}
