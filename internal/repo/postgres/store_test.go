package postgres

import (
	"CloudVault/internal/model"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(
		&model.Account{},
		&model.File{},
		&model.AccessRequest{},
		&model.Notification{},
		&model.AccessLog{},
	); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(newTestDB(t))
}
