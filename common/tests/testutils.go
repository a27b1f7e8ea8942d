package tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samw425-glitch/gist-ghost-sync/builder/store/database"
)

// InitTestDB opens a private sqlite store under t.TempDir with the schema
// applied. The handle is closed automatically when the test ends.
func InitTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, _ := CreateTestStore(t)
	return db
}

// CreateTestStore also returns the store file path, for tests that reopen
// the store through the API's db override.
func CreateTestStore(t *testing.T) (*database.DB, string) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog-test.sqlite")
	db, err := database.NewDB(ctx, database.DBConfig{
		Dialect: database.DialectSQLite,
		DSN:     database.SQLiteDSN(path),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := database.Init(ctx, db); err != nil {
		t.Fatalf("failed to init test db schema: %v", err)
	}
	return db, path
}
