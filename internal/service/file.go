package service

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo/dual"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileService — операции с файлами владельца поверх двойного хранилища.
type FileService struct {
	store  *dual.Store
	logger *zap.SugaredLogger
}

func NewFileService(store *dual.Store, logger *zap.SugaredLogger) *FileService {
	return &FileService{store: store, logger: logger}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// List возвращает файлы владельца. Некорректный (не-UUID) идентификатор —
// это легаси-идентификатор старых клиентов: отдаём пустой список, а не
// ошибку.
func (s *FileService) List(ctx context.Context, ownerID string) ([]model.File, error) {
	if !isUUID(ownerID) {
		return []model.File{}, nil
	}
	files, _, err := s.store.ListFiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []model.File{}
	}
	return files, nil
}

// Save апсертит пачку файлов по натуральному ключу (owner, name). Записи без
// имени молча пропускаются, как в исходной системе. Возвращает признак, что
// все записи легли в первичное хранилище.
func (s *FileService) Save(ctx context.Context, ownerID string, files []model.File) (bool, error) {
	if !isUUID(ownerID) {
		return false, ErrInvalidOwnerID
	}
	primaryOk := true
	for i := range files {
		f := files[i]
		if f.Name == "" {
			continue
		}
		f.OwnerID = ownerID
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		ok, err := s.store.UpsertFile(ctx, &f)
		if err != nil {
			return false, fmt.Errorf("save file %q: %w", f.Name, err)
		}
		if !ok {
			primaryOk = false
		}
	}
	if !primaryOk {
		s.logger.Warnw("file batch landed on fallback only", "owner_id", ownerID)
	}
	return primaryOk, nil
}

// Delete удаляет файл в обоих хранилищах; отсутствие файла не считается
// ошибкой.
func (s *FileService) Delete(ctx context.Context, ownerID, fileID string) (bool, error) {
	return s.store.DeleteFile(ctx, ownerID, fileID)
}
