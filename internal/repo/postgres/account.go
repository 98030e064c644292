package postgres

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

func (s *Store) CreateAccount(ctx context.Context, a *model.Account) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAccounts возвращает аккаунты в стабильном порядке: порядок скана важен
// для детерминизма разрешения ключа (первый совпавший выигрывает).
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) UpdateSessionSalt(ctx context.Context, accountID, salt string) error {
	tx := s.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", accountID).
		Update("session_salt", salt)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
