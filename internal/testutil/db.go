// Package testutil provides throw-away databases and loggers for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/Harsha-bonthu/pt2/internal/db"
)

// NewDB opens a migrated SQLite database in the test's temp dir. The
// connection is closed when the test finishes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := "sqlite:///" + filepath.Join(t.TempDir(), "test.db")
	database, err := db.Connect(url, DiscardLogger())
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err != nil {
			t.Errorf("failed to access test DB pool: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			t.Errorf("failed to close test DB: %v", err)
		}
	})

	return database
}
