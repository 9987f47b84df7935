package repository

import (
	"log"
	"os"
	"testing"

	"quill/internal/config"
	"quill/internal/database"

	"gorm.io/gorm"
)

// testDB backs the integration tests; it stays nil when no Postgres is
// reachable, and those tests skip themselves.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "development")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("integration tests skipped: failed to load config: %v", err)
		os.Exit(m.Run())
	}

	testDB, err = database.Connect(cfg)
	if err != nil {
		log.Printf("integration tests skipped: database unavailable: %v", err)
		testDB = nil
	}

	code := m.Run()

	if testDB != nil {
		truncateTables(testDB)
	}
	os.Exit(code)
}

func truncateTables(db *gorm.DB) {
	db.Exec("TRUNCATE TABLE follows, comments, posts, groups, users RESTART IDENTITY CASCADE")
}

// requireDB skips the calling test when no database is available.
func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("database unavailable")
	}
	return testDB
}
