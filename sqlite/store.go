package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/sitegrab/sitegrab"
)

// Compile-time interface verification.
var _ sitegrab.ResultSink = (*Store)(nil)

// Store accumulates result records in memory and serializes them into a
// SQLite database on Save. Save replaces any rows from a previous save of
// the same destination in one transaction, so readers observe either the
// old collection or the new one, never a mix.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	mu      sync.Mutex
	runID   string
	results []*sitegrab.Result
}

// NewStore creates an empty Store. Saved rows are tagged with a fresh
// run identifier.
func NewStore() *Store {
	return &Store{runID: uuid.NewString()}
}

// Append adds a record to the collection.
func (s *Store) Append(result *sitegrab.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Results returns the accumulated records in append order.
func (s *Store) Results() []*sitegrab.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*sitegrab.Result(nil), s.results...)
}

// Len returns the number of accumulated records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Save writes the entire collection to the SQLite database at destination,
// creating it if needed and overwriting previously saved rows.
func (s *Store) Save(ctx context.Context, destination string) error {
	results := s.Results()

	db := NewDB(destination)
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return err
	}

	for i, r := range results {
		var title sql.NullString
		if r.Title != nil {
			title = sql.NullString{String: *r.Title, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO results (id, run_id, position, url, title, text_content, links, captured_at, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), s.runID, i, r.URL, title, r.TextContent, r.Links, r.Timestamp, r.ContentHash)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads back the records saved at path, in position order.
func Load(ctx context.Context, path string) ([]*sitegrab.Result, error) {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT url, title, text_content, links, captured_at, content_hash
		FROM results
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*sitegrab.Result
	for rows.Next() {
		var r sitegrab.Result
		var title sql.NullString
		if err := rows.Scan(&r.URL, &title, &r.TextContent, &r.Links, &r.Timestamp, &r.ContentHash); err != nil {
			return nil, err
		}
		if title.Valid {
			r.Title = &title.String
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}
