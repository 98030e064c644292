package bolt

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

func (s *Store) readOwnerFiles(tx *bolt.Tx, ownerID string) ([]model.File, error) {
	raw := tx.Bucket(bucketFiles).Get([]byte(ownerID))
	if raw == nil {
		return nil, nil
	}
	var files []model.File
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Store) FileByID(_ context.Context, id string) (*model.File, error) {
	var found *model.File
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFiles).ForEach(func(_, raw []byte) error {
			var files []model.File
			if err := json.Unmarshal(raw, &files); err != nil {
				return err
			}
			for i := range files {
				if files[i].ID == id {
					found = &files[i]
					return nil
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, repo.ErrNotFound
	}
	return found, nil
}

func (s *Store) ListFiles(_ context.Context, ownerID string) ([]model.File, error) {
	var files []model.File
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		files, err = s.readOwnerFiles(tx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// UpsertFile rewrites the owner's list in one write transaction, replacing
// any entry with the same name. Matches the primary store's
// upsert-on-(owner, name) contract independently.
func (s *Store) UpsertFile(_ context.Context, f *model.File) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		files, err := s.readOwnerFiles(tx, f.OwnerID)
		if err != nil {
			return err
		}
		if f.UploadedAt.IsZero() {
			f.UploadedAt = time.Now().UTC()
		}
		replaced := false
		for i := range files {
			if files[i].Name == f.Name {
				// keep the original id and upload time, overwrite the rest
				f.ID = files[i].ID
				f.UploadedAt = files[i].UploadedAt
				files[i] = *f
				replaced = true
				break
			}
		}
		if !replaced {
			files = append(files, *f)
		}
		return putJSON(tx.Bucket(bucketFiles), f.OwnerID, files)
	})
}

func (s *Store) DeleteFile(_ context.Context, ownerID, fileID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		files, err := s.readOwnerFiles(tx, ownerID)
		if err != nil {
			return err
		}
		kept := files[:0]
		for _, f := range files {
			if f.ID != fileID {
				kept = append(kept, f)
			}
		}
		return putJSON(tx.Bucket(bucketFiles), ownerID, kept)
	})
}
