package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const documentsSchema = `CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
)`

// PostgresStore keeps documents as JSONB rows of a single documents table.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// EnsureSchema creates the documents table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

// Get decodes the document into dest.
func (s *PostgresStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
	var data []byte
	query := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	if err := s.db.GetContext(ctx, &data, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return nil
}

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

// List returns every document of collection ordered by ID.
func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	query := `SELECT id, data FROM documents WHERE collection = $1 ORDER BY id`
	if err := s.db.SelectContext(ctx, &rows, query, collection); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{ID: row.ID, Data: json.RawMessage(row.Data)})
	}
	return docs, nil
}

// Put upserts the document.
func (s *PostgresStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	query := `INSERT INTO documents (collection, id, data, updated_at) VALUES ($1, $2, $3, $4)
        ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, collection, id, data, s.now().UTC()); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update merges top-level fields into an existing document using the jsonb concatenation operator.
func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch %s/%s: %w", collection, id, err)
	}
	query := `UPDATE documents SET data = data || $3::jsonb, updated_at = $4 WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, collection, id, patch, s.now().UTC())
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// ArrayUnion appends values to an array field inside a row-locked transaction.
func (s *PostgresStore) ArrayUnion(ctx context.Context, collection, id, field string, values ...string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin array union: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var data []byte
	selectQuery := `SELECT data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`
	if err = tx.GetContext(ctx, &data, selectQuery, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrDocumentNotFound
			return err
		}
		err = fmt.Errorf("lock %s/%s: %w", collection, id, err)
		return err
	}

	updated, err := unionField(data, field, values)
	if err != nil {
		return err
	}

	updateQuery := `UPDATE documents SET data = $3, updated_at = $4 WHERE collection = $1 AND id = $2`
	if _, err = tx.ExecContext(ctx, updateQuery, collection, id, []byte(updated), s.now().UTC()); err != nil {
		err = fmt.Errorf("array union %s/%s: %w", collection, id, err)
		return err
	}
	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit array union: %w", err)
		return err
	}
	return nil
}
