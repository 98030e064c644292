package service

import (
	"CloudVault/internal/keygen"
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"CloudVault/internal/repo/dual"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService — регистрация, логин и ротация сессионной соли.
//
// Пароли сознательно сравниваются как непрозрачные строки: это контракт
// исходной системы, и данный сервис его не "чинит".
type UserService struct {
	store  *dual.Store
	logger *zap.SugaredLogger
}

func NewUserService(store *dual.Store, logger *zap.SugaredLogger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Register создаёт аккаунт; имя пользователя выводится из локальной части
// email, как в исходной системе.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.Account, error) {
	existing, err := s.store.AccountByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	username := email
	if i := strings.Index(email, "@"); i >= 0 {
		username = email[:i]
	}
	a := &model.Account{
		ID:       uuid.NewString(),
		Email:    email,
		Password: password,
		Username: username,
	}
	primaryOk, err := s.store.CreateAccount(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	if !primaryOk {
		s.logger.Warnw("account registered on fallback only", "email", email)
	}
	return a, nil
}

// Login сверяет учётные данные и ротирует сессионную соль. Новая соль
// сохраняется до возврата аккаунта: это единственный механизм инвалидации
// ранее выданных ключей доступа.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.Account, error) {
	a, err := s.store.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	if a.Password != password {
		return nil, ErrInvalidCredentials
	}

	salt, err := keygen.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("generate session salt: %w", err)
	}
	primaryOk, err := s.store.UpdateSessionSalt(ctx, a.ID, salt)
	if err != nil {
		return nil, fmt.Errorf("rotate session salt: %w", err)
	}
	if !primaryOk {
		s.logger.Warnw("session salt rotated on fallback only", "account_id", a.ID)
	}
	a.SessionSalt = &salt
	return a, nil
}

// AccountByID — поиск аккаунта по идентификатору (нужен /api/me).
// Линейный проход по скану аккаунтов, как и у резолвера ключей.
func (s *UserService) AccountByID(ctx context.Context, id string) (*model.Account, error) {
	accounts, primaryOk, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	if primaryOk {
		local, err := s.store.FallbackAccounts(ctx)
		if err == nil {
			for i := range local {
				if local[i].ID == id {
					return &local[i], nil
				}
			}
		}
	}
	return nil, repo.ErrNotFound
}
