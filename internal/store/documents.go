package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a named document does not exist.
var ErrNotFound = errors.New("document not found")

// PutDocument stores content under name, wholly replacing any previous
// version. There is no history.
func (d *DB) PutDocument(ctx context.Context, name string, content []byte) error {
	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO documents(name, content, updated_at) VALUES(?, ?, ?)
ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at;`,
		name, content, time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetDocument returns the stored bytes for name, or ErrNotFound.
func (d *DB) GetDocument(ctx context.Context, name string) ([]byte, error) {
	var content []byte
	err := d.Pool.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE name = ?;`, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}
