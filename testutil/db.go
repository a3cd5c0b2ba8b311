package testutil

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/davalosk/ezu/storage/database"
)

// OpenDB connects to the PostgreSQL database at TEST_DATABASE_URL, migrates it and empties
// every table. Tests are skipped when the variable is not set.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.OpenURL(dbURL)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if _, err = db.Exec(`TRUNCATE registration, section, student, instructor, course, semester, year, period, users`); err != nil {
		t.Fatalf("truncating tables failed: %v", err)
	}
	return db
}
