//go:build integration

package testhelper

import (
	"testing"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	entryID, parsedID := SeedDefinition(t, pool, domain.SourceOxford, "Smoke")

	if n := CountRows(t, pool, "parsed_definitions", "id = $1 AND entry_id = $2", parsedID, entryID); n != 1 {
		t.Fatalf("expected seeded definition in DB, got %d rows", n)
	}
}
