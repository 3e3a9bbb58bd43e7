package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SearchStore = (*SearchRepo)(nil)

// maxRecentSearches bounds the history; older entries are pruned on insert.
const maxRecentSearches = 5

// SearchRepo is the SQLite implementation of the SearchStore port interface.
type SearchRepo struct {
	db *DB
}

// NewSearchRepo creates a new SearchRepo backed by the given DB.
func NewSearchRepo(db *DB) *SearchRepo {
	return &SearchRepo{db: db}
}

// Record adds username to the history. An existing entry for the same
// username (any case) is replaced so the history never shows duplicates, and
// entries beyond the retention cap are pruned oldest-first.
func (r *SearchRepo) Record(ctx context.Context, username string) error {
	_, err := r.db.Writer.ExecContext(ctx,
		`DELETE FROM searches WHERE username = ? COLLATE NOCASE`, username)
	if err != nil {
		return fmt.Errorf("dedupe search %s: %w", username, err)
	}

	_, err = r.db.Writer.ExecContext(ctx,
		`INSERT INTO searches (username, searched_at) VALUES (?, ?)`,
		username, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record search %s: %w", username, err)
	}

	_, err = r.db.Writer.ExecContext(ctx,
		`DELETE FROM searches WHERE id NOT IN (
			SELECT id FROM searches ORDER BY searched_at DESC, id DESC LIMIT ?
		)`, maxRecentSearches)
	if err != nil {
		return fmt.Errorf("prune searches: %w", err)
	}

	return nil
}

// List returns the history, newest first.
func (r *SearchRepo) List(ctx context.Context) ([]model.Search, error) {
	rows, err := r.db.Reader.QueryContext(ctx,
		`SELECT id, username, searched_at FROM searches ORDER BY searched_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	var searches []model.Search
	for rows.Next() {
		var search model.Search
		var searchedAt string

		if err := rows.Scan(&search.ID, &search.Username, &searchedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}

		search.SearchedAt, err = time.Parse(time.RFC3339, searchedAt)
		if err != nil {
			return nil, fmt.Errorf("parse searched_at: %w", err)
		}

		searches = append(searches, search)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}

	return searches, nil
}

// Clear removes all history entries.
func (r *SearchRepo) Clear(ctx context.Context) error {
	if _, err := r.db.Writer.ExecContext(ctx, `DELETE FROM searches`); err != nil {
		return fmt.Errorf("clear searches: %w", err)
	}
	return nil
}
