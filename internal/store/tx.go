package store

import (
	"context"
	"database/sql"
)

// makeTx begins a transaction and returns it with its discard and commit functions.
// Calling discard after commit only returns sql.ErrTxDone.
func makeTx(ctx context.Context, db *sql.DB) (tx *sql.Tx, discard, commit func() error, err error) {
	sqltx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return sqltx,
		func() error {
			return sqltx.Rollback()
		},
		func() error {
			return sqltx.Commit()
		},
		nil
}
