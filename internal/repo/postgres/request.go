package postgres

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

func (s *Store) CreateRequest(ctx context.Context, r *model.AccessRequest) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *Store) RequestByID(ctx context.Context, id string) (*model.AccessRequest, error) {
	var r model.AccessRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// UpdateRequestStatus перезаписывает статус без проверки переходов: правило
// "только из pending" обеспечивает сервисный слой, которому виден текущий
// статус.
func (s *Store) UpdateRequestStatus(ctx context.Context, id, status string) (*model.AccessRequest, error) {
	tx := s.db.WithContext(ctx).Model(&model.AccessRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, repo.ErrNotFound
	}
	return s.RequestByID(ctx, id)
}

func (s *Store) ListPendingRequests(ctx context.Context, ownerID string) ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, model.RequestPending).
		Order("created_at, id").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) HasApprovedRequest(ctx context.Context, fileID, requesterKey string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.AccessRequest{}).
		Where("file_id = ? AND requester_key = ? AND status = ?", fileID, requesterKey, model.RequestApproved).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) AppendAccessLog(ctx context.Context, e *model.AccessLog) error {
	return s.db.WithContext(ctx).Create(e).Error
}
