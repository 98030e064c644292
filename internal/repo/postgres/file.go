package postgres

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) FileByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (s *Store) ListFiles(ctx context.Context, ownerID string) ([]model.File, error) {
	var files []model.File
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("uploaded_at, id").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// UpsertFile вставляет запись либо перезаписывает существующую с тем же
// натуральным ключом (owner_id, name). Идентификатор и uploaded_at исходной
// записи при конфликте сохраняются.
func (s *Store) UpsertFile(ctx context.Context, f *model.File) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"size", "type", "url",
			"category", "risk_level", "verdict",
			"cipher_content", "iv",
		}),
	}).Create(f).Error
}

func (s *Store) DeleteFile(ctx context.Context, ownerID, fileID string) error {
	return s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, fileID).
		Delete(&model.File{}).Error
}
