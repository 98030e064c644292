package service

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"CloudVault/internal/repo/dual"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ownerSentinel — литерал, который исторически присылает клиент, когда
// владелец ему неизвестен (JS-сериализация undefined).
const ownerSentinel = "undefined"

// AccessService — жизненный цикл запросов на расшифровку:
// pending → approved | denied, терминальные статусы не откатываются.
type AccessService struct {
	store  *dual.Store
	logger *zap.SugaredLogger
}

func NewAccessService(store *dual.Store, logger *zap.SugaredLogger) *AccessService {
	return &AccessService{store: store, logger: logger}
}

// Create регистрирует pending-запрос и в той же логической операции
// уведомляет владельца. Пустой или сентинельный ownerID разрешается через
// запись о файле; отсутствующий файл — repo.ErrNotFound.
func (s *AccessService) Create(ctx context.Context, fileID, ownerID, requesterKey string) (*model.AccessRequest, error) {
	if fileID == "" {
		return nil, repo.ErrNotFound
	}

	fileName := ""
	if f, err := s.store.FileByID(ctx, fileID); err == nil {
		fileName = f.Name
		if ownerID == "" || ownerID == ownerSentinel {
			ownerID = f.OwnerID
		}
	} else if ownerID == "" || ownerID == ownerSentinel {
		// владельца не узнать без файла
		if errors.Is(err, repo.ErrNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("resolve file owner: %w", err)
	}

	r := &model.AccessRequest{
		ID:           uuid.NewString(),
		FileID:       fileID,
		OwnerID:      ownerID,
		RequesterKey: requesterKey,
		Status:       model.RequestPending,
	}
	primaryOk, err := s.store.CreateRequest(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create access request: %w", err)
	}
	if !primaryOk {
		s.logger.Warnw("access request stored on fallback only", "request_id", r.ID)
	}

	// уведомление — best effort в той же логической операции
	message := fmt.Sprintf("A visitor with key %s requests permission to decrypt %q.", requesterKey, fileName)
	if fileName == "" {
		message = fmt.Sprintf("A visitor with key %s requests permission to decrypt one of your files.", requesterKey)
	}
	n := &model.Notification{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		Title:   "Decryption Request",
		Message: message,
		Type:    "alert",
	}
	if _, err := s.store.CreateNotification(ctx, n); err != nil {
		s.logger.Warnw("notification for access request failed", "request_id", r.ID, "error", err)
	}

	r.FileName = fileName
	return r, nil
}

// UpdateStatus выполняет единственно допустимые переходы из pending.
// Повторная попытка перевода терминального запроса отклоняется.
func (s *AccessService) UpdateStatus(ctx context.Context, requestID, status string) (*model.AccessRequest, error) {
	if status != model.RequestApproved && status != model.RequestDenied {
		return nil, ErrInvalidStatus
	}
	current, err := s.store.RequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if current.Status != model.RequestPending {
		return nil, ErrRequestResolved
	}
	updated, _, err := s.store.UpdateRequestStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CheckApproval — единственные "ворота", которыми клиент получателя
// пользуется перед локальной расшифровкой: булев ответ, ключи расшифровки
// сервером не передаются.
func (s *AccessService) CheckApproval(ctx context.Context, fileID, requesterKey string) (bool, error) {
	return s.store.HasApprovedRequest(ctx, fileID, requesterKey)
}

// ListPending возвращает ожидающие запросы владельца, дополняя каждый
// денормализованным именем файла для отображения.
func (s *AccessService) ListPending(ctx context.Context, ownerID string) ([]model.AccessRequest, error) {
	requests, primaryOk, err := s.store.ListPendingRequests(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if primaryOk {
		// запросы, созданные во время сбоя первичного, живут только в фолбэке
		local, ferr := s.store.FallbackPendingRequests(ctx, ownerID)
		if ferr != nil {
			s.logger.Warnw("fallback pending scan failed", "owner_id", ownerID, "error", ferr)
		} else {
			seen := make(map[string]bool, len(requests))
			for _, r := range requests {
				seen[r.ID] = true
			}
			for _, r := range local {
				if !seen[r.ID] {
					requests = append(requests, r)
				}
			}
		}
	}
	for i := range requests {
		if f, err := s.store.FileByID(ctx, requests[i].FileID); err == nil {
			requests[i].FileName = f.Name
		}
	}
	if requests == nil {
		requests = []model.AccessRequest{}
	}
	return requests, nil
}
