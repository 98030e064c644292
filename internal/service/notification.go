package service

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo/dual"
	"context"
	"sort"

	"go.uber.org/zap"
)

// NotificationService — чтение ленты уведомлений и пометка прочтения.
type NotificationService struct {
	store  *dual.Store
	logger *zap.SugaredLogger
}

func NewNotificationService(store *dual.Store, logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{store: store, logger: logger}
}

// List возвращает уведомления пользователя, новые первыми. При доступном
// первичном хранилище досматриваются уведомления, созданные во время его
// сбоя и оставшиеся только в фолбэке.
func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	notifications, primaryOk, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	if primaryOk {
		local, ferr := s.store.FallbackNotifications(ctx, userID)
		if ferr != nil {
			s.logger.Warnw("fallback notification scan failed", "user_id", userID, "error", ferr)
		} else {
			seen := make(map[string]bool, len(notifications))
			for _, n := range notifications {
				seen[n.ID] = true
			}
			for _, n := range local {
				if !seen[n.ID] {
					notifications = append(notifications, n)
				}
			}
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID < notifications[j].ID
	})
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

// MarkRead устанавливает флаг прочтения (unset → set); другие мутации
// уведомлений ядром не выполняются.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	n, _, err := s.store.MarkNotificationRead(ctx, id)
	return n, err
}
