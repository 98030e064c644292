package postgres

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store — реализация repo.Store поверх первичной реляционной БД (gorm).
type Store struct {
	db *gorm.DB
}

var _ repo.Store = (*Store)(nil)

// InitDB открывает подключение к Postgres и прогоняет автомиграции моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.Account{},
		&model.File{},
		&model.AccessRequest{},
		&model.Notification{},
		&model.AccessLog{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

// New создаёт хранилище поверх готового подключения.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
