package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// SeedDefinition inserts a minimal parsed definition for a fresh entry and
// returns the entry ID and the record ID.
func SeedDefinition(t *testing.T, pool *pgxpool.Pool, source domain.SourceCode, title string) (entryID, parsedID uuid.UUID) {
	t.Helper()

	entryID, parsedID = uuid.New(), uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO parsed_definitions (id, entry_id, source_code, sense_number, meaning_title, definition, raw_fragment)
		 VALUES ($1, $2, $3, 1, $4, $5, $5)`,
		parsedID, entryID, string(source), title, title+" definition.",
	)
	if err != nil {
		t.Fatalf("testhelper: seed definition: %v", err)
	}
	return entryID, parsedID
}

// CountRows returns the number of rows in table matching the where clause.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	var n int
	q := "SELECT count(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	if err := pool.QueryRow(context.Background(), q, args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
