package prefsdb

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type PreferenceRow struct {
	Category  string
	Value     string
	UpdatedAt int64
}

const getPreference = `-- name: GetPreference :one
SELECT category, value, updated_at FROM preferences WHERE category = ?
`

func (q *Queries) GetPreference(ctx context.Context, category string) (PreferenceRow, error) {
	row := q.db.QueryRowContext(ctx, getPreference, category)
	var i PreferenceRow
	err := row.Scan(&i.Category, &i.Value, &i.UpdatedAt)
	return i, err
}

const upsertPreference = `-- name: UpsertPreference :exec
INSERT INTO preferences (category, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(category) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

type UpsertPreferenceParams struct {
	Category  string
	Value     string
	UpdatedAt int64
}

func (q *Queries) UpsertPreference(ctx context.Context, arg UpsertPreferenceParams) error {
	_, err := q.db.ExecContext(ctx, upsertPreference, arg.Category, arg.Value, arg.UpdatedAt)
	return err
}

const listPreferences = `-- name: ListPreferences :many
SELECT category, value, updated_at FROM preferences ORDER BY category
`

func (q *Queries) ListPreferences(ctx context.Context) ([]PreferenceRow, error) {
	rows, err := q.db.QueryContext(ctx, listPreferences)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck
	var items []PreferenceRow
	for rows.Next() {
		var i PreferenceRow
		if err := rows.Scan(&i.Category, &i.Value, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deletePreference = `-- name: DeletePreference :execrows
DELETE FROM preferences WHERE category = ?
`

func (q *Queries) DeletePreference(ctx context.Context, category string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePreference, category)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
