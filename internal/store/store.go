// Package store keeps a built catalog in a sqlite database so it can be queried
// without loading every page again.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"framedata/internal/fields"
	"framedata/internal/framedata"
	"framedata/internal/loader"
	"framedata/internal/roster"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// DriverName is the database/sql driver the store is written against.
const DriverName = "sqlite"

// Migrate creates the tables of the store if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Save replaces whatever the database holds with catalog.
func Save(ctx context.Context, db *sql.DB, catalog *framedata.Catalog) error {
	err := Migrate(ctx, db)
	if err != nil {
		return err
	}

	tx, discard, commit, err := makeTx(ctx, db)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer discard()

	for _, table := range []string{"aliases", "moves", "failures", "warnings"} {
		_, err := tx.ExecContext(ctx, "delete from "+table)
		if err != nil {
			return fmt.Errorf("store: clear %s: %w", table, err)
		}
	}

	for _, characterID := range catalog.Characters() {
		moves, err := catalog.Get(characterID)
		if err != nil {
			return err
		}
		for position, m := range moves {
			err := insertMove(ctx, tx, position, m)
			if err != nil {
				return fmt.Errorf("store: save %s %s: %w", characterID, m.Canonical, err)
			}
		}
	}

	report := catalog.Report()
	for characterID, failure := range report.Failures {
		var stage sql.NullInt64
		message := failure.Error()
		var stageErr *loader.StageError
		if errors.As(failure, &stageErr) {
			stage = sql.NullInt64{Int64: int64(stageErr.Stage), Valid: true}
			message = stageErr.Err.Error()
		}
		_, err := tx.ExecContext(
			ctx,
			"insert into failures (character_id, stage, message) values (?, ?, ?)",
			characterID, stage, message,
		)
		if err != nil {
			return fmt.Errorf("store: save failure of %s: %w", characterID, err)
		}
	}

	for characterID, warnings := range report.Warnings {
		for position, w := range warnings {
			kind, err := w.Kind.MarshalText()
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(
				ctx,
				`insert into warnings (character_id, position, kind, source_table, source_row, message)
				values (?, ?, ?, ?, ?, ?)`,
				characterID, position, string(kind), w.Table, w.Row, w.Message,
			)
			if err != nil {
				return fmt.Errorf("store: save warning of %s: %w", characterID, err)
			}
		}
	}

	err = commit()
	if err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func insertMove(ctx context.Context, tx *sql.Tx, position int, m framedata.Move) error {
	fieldsJson, err := json.Marshal(m.Fields)
	if err != nil {
		return err
	}
	extra := m.Extra
	if extra == nil {
		extra = []fields.Extra{}
	}
	extraJson, err := json.Marshal(extra)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`insert into moves (
			character_id, position, canonical, display_name, input,
			fields, extra, source_table, source_row
		) values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CharacterID, position, m.Canonical, m.DisplayName, m.Input,
		string(fieldsJson), string(extraJson), m.Table, m.Row,
	)
	if err != nil {
		return err
	}

	for _, alias := range m.Aliases {
		_, err := tx.ExecContext(
			ctx,
			"insert into aliases (character_id, alias, canonical) values (?, ?, ?)",
			m.CharacterID, alias, m.Canonical,
		)
		if err != nil {
			return fmt.Errorf("alias %q: %w", alias, err)
		}
	}
	return nil
}

// Open reads back a catalog written by Save. Failures are restored as
// *loader.StageError when they were saved as one, otherwise only their message is
// kept.
func Open(ctx context.Context, db *sql.DB, r *roster.Roster) (*framedata.Catalog, error) {
	err := Migrate(ctx, db)
	if err != nil {
		return nil, err
	}

	moves, err := readMoves(ctx, db)
	if err != nil {
		return nil, err
	}
	report, err := readReport(ctx, db)
	if err != nil {
		return nil, err
	}

	catalog, err := framedata.NewCatalog(r, moves, report)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return catalog, nil
}

type aliasKey struct {
	characterID string
	canonical   string
}

func readMoves(ctx context.Context, db *sql.DB) (map[string][]framedata.Move, error) {
	aliases := map[aliasKey][]string{}
	rows, err := db.QueryContext(
		ctx,
		"select character_id, canonical, alias from aliases order by character_id, canonical, alias",
	)
	if err != nil {
		return nil, fmt.Errorf("store: read aliases: %w", err)
	}
	for rows.Next() {
		var key aliasKey
		var alias string
		err := rows.Scan(&key.characterID, &key.canonical, &alias)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: read aliases: %w", err)
		}
		aliases[key] = append(aliases[key], alias)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read aliases: %w", err)
	}

	rows, err = db.QueryContext(
		ctx,
		`select character_id, canonical, display_name, input, fields, extra, source_table, source_row
		from moves order by character_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: read moves: %w", err)
	}
	defer rows.Close()

	moves := map[string][]framedata.Move{}
	for rows.Next() {
		var m framedata.Move
		var fieldsJson, extraJson string
		err := rows.Scan(
			&m.CharacterID, &m.Canonical, &m.DisplayName, &m.Input,
			&fieldsJson, &extraJson, &m.Table, &m.Row,
		)
		if err != nil {
			return nil, fmt.Errorf("store: read moves: %w", err)
		}
		err = json.Unmarshal([]byte(fieldsJson), &m.Fields)
		if err != nil {
			return nil, fmt.Errorf("store: decode fields of %s %s: %w", m.CharacterID, m.Canonical, err)
		}
		err = json.Unmarshal([]byte(extraJson), &m.Extra)
		if err != nil {
			return nil, fmt.Errorf("store: decode extra of %s %s: %w", m.CharacterID, m.Canonical, err)
		}
		if len(m.Extra) == 0 {
			m.Extra = nil
		}
		m.Aliases = aliases[aliasKey{characterID: m.CharacterID, canonical: m.Canonical}]
		moves[m.CharacterID] = append(moves[m.CharacterID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read moves: %w", err)
	}
	return moves, nil
}

func readReport(ctx context.Context, db *sql.DB) (framedata.Report, error) {
	report := framedata.Report{
		Failures: map[string]error{},
		Warnings: map[string][]framedata.Warning{},
	}

	rows, err := db.QueryContext(ctx, "select character_id, stage, message from failures")
	if err != nil {
		return framedata.Report{}, fmt.Errorf("store: read failures: %w", err)
	}
	for rows.Next() {
		var characterID, message string
		var stage sql.NullInt64
		err := rows.Scan(&characterID, &stage, &message)
		if err != nil {
			rows.Close()
			return framedata.Report{}, fmt.Errorf("store: read failures: %w", err)
		}
		var failure error = errors.New(message)
		if stage.Valid {
			failure = &loader.StageError{
				CharacterID: characterID,
				Stage:       loader.State(stage.Int64),
				Err:         failure,
			}
		}
		report.Failures[characterID] = failure
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return framedata.Report{}, fmt.Errorf("store: read failures: %w", err)
	}

	rows, err = db.QueryContext(
		ctx,
		`select character_id, kind, source_table, source_row, message
		from warnings order by character_id, position`,
	)
	if err != nil {
		return framedata.Report{}, fmt.Errorf("store: read warnings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var characterID, kind string
		var w framedata.Warning
		err := rows.Scan(&characterID, &kind, &w.Table, &w.Row, &w.Message)
		if err != nil {
			return framedata.Report{}, fmt.Errorf("store: read warnings: %w", err)
		}
		err = w.Kind.UnmarshalText([]byte(kind))
		if err != nil {
			return framedata.Report{}, fmt.Errorf("store: read warnings: %w", err)
		}
		report.Warnings[characterID] = append(report.Warnings[characterID], w)
	}
	if err := rows.Err(); err != nil {
		return framedata.Report{}, fmt.Errorf("store: read warnings: %w", err)
	}
	return report, nil
}
