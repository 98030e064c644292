package postgres

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

func (s *Store) CreateNotification(ctx context.Context, n *model.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *Store) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	tx := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	var n model.Notification
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}
