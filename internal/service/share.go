package service

import (
	"CloudVault/internal/keygen"
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"CloudVault/internal/repo/dual"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ShareService разрешает ключ доступа во владельца и его файлы.
type ShareService struct {
	store  *dual.Store
	logger *zap.SugaredLogger
}

func NewShareService(store *dual.Store, logger *zap.SugaredLogger) *ShareService {
	return &ShareService{store: store, logger: logger}
}

// Resolve нормализует ключ и линейно сканирует аккаунты, пересчитывая ключ
// каждого. Порядок скана — порядок выдачи хранилища: при коллизии ключей
// детерминированно выигрывает первый встреченный аккаунт. Сначала
// сканируется первичный вид; если он был доступен и совпадения нет,
// досматриваются аккаунты, живущие только в фолбэке (зарегистрированные во
// время сбоя первичного хранилища).
func (s *ShareService) Resolve(ctx context.Context, candidateKey string) (*model.Account, []model.File, error) {
	key := strings.ToUpper(candidateKey)

	accounts, primaryOk, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list accounts: %w", err)
	}

	owner := matchKey(accounts, key)
	if owner == nil && primaryOk {
		seen := make(map[string]bool, len(accounts))
		for _, a := range accounts {
			seen[a.ID] = true
		}
		local, ferr := s.store.FallbackAccounts(ctx)
		if ferr != nil {
			s.logger.Warnw("fallback account scan failed", "error", ferr)
		} else {
			extra := local[:0:0]
			for _, a := range local {
				if !seen[a.ID] {
					extra = append(extra, a)
				}
			}
			owner = matchKey(extra, key)
		}
	}
	if owner == nil {
		return nil, nil, repo.ErrNotFound
	}

	files, _, err := s.store.ListFiles(ctx, owner.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list files for owner: %w", err)
	}

	// журнал доступа — best effort: его сбой не роняет запрос
	if err := s.store.AppendAccessLog(ctx, &model.AccessLog{OwnerID: owner.ID, AccessKey: key}); err != nil {
		s.logger.Warnw("access log append failed", "owner_id", owner.ID, "error", err)
	}

	return owner, files, nil
}

func matchKey(accounts []model.Account, key string) *model.Account {
	for i := range accounts {
		if keygen.Derive(accounts[i].ID, accounts[i].Salt()) == key {
			return &accounts[i]
		}
	}
	return nil
}
