package bolt

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

func (s *Store) CreateAccount(_ context.Context, a *model.Account) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAccounts)
		if b.Get([]byte(a.Email)) != nil {
			return fmt.Errorf("account %q already exists", a.Email)
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
		return putJSON(b, a.Email, a)
	})
}

func (s *Store) AccountByEmail(_ context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		return getJSON(tx.Bucket(bucketAccounts), email, &a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAccounts returns accounts in bucket (email) order, which is stable
// between calls — the resolver relies on a deterministic scan order.
func (s *Store) ListAccounts(_ context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAccounts).ForEach(func(_, raw []byte) error {
			var a model.Account
			if err := json.Unmarshal(raw, &a); err != nil {
				return err
			}
			accounts = append(accounts, a)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) UpdateSessionSalt(_ context.Context, accountID, salt string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAccounts)
		c := b.Cursor()
		for k, raw := c.First(); k != nil; k, raw = c.Next() {
			var a model.Account
			if err := json.Unmarshal(raw, &a); err != nil {
				return err
			}
			if a.ID != accountID {
				continue
			}
			a.SessionSalt = &salt
			return putJSON(b, a.Email, &a)
		}
		return repo.ErrNotFound
	})
}
