package bolt

import (
	"CloudVault/internal/model"
	"context"
	"encoding/binary"
	"encoding/json"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

func (s *Store) CreateRequest(_ context.Context, r *model.AccessRequest) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		return putJSON(tx.Bucket(bucketRequests), r.ID, r)
	})
}

func (s *Store) RequestByID(_ context.Context, id string) (*model.AccessRequest, error) {
	var r model.AccessRequest
	err := s.db.View(func(tx *bolt.Tx) error {
		return getJSON(tx.Bucket(bucketRequests), id, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) UpdateRequestStatus(_ context.Context, id, status string) (*model.AccessRequest, error) {
	var r model.AccessRequest
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRequests)
		if err := getJSON(b, id, &r); err != nil {
			return err
		}
		r.Status = status
		return putJSON(b, id, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListPendingRequests(_ context.Context, ownerID string) ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRequests).ForEach(func(_, raw []byte) error {
			var r model.AccessRequest
			if err := json.Unmarshal(raw, &r); err != nil {
				return err
			}
			if r.OwnerID == ownerID && r.Status == model.RequestPending {
				requests = append(requests, r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.Before(requests[j].CreatedAt)
		}
		return requests[i].ID < requests[j].ID
	})
	return requests, nil
}

func (s *Store) HasApprovedRequest(_ context.Context, fileID, requesterKey string) (bool, error) {
	approved := false
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRequests).ForEach(func(_, raw []byte) error {
			var r model.AccessRequest
			if err := json.Unmarshal(raw, &r); err != nil {
				return err
			}
			if r.FileID == fileID && r.RequesterKey == requesterKey && r.Status == model.RequestApproved {
				approved = true
			}
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return approved, nil
}

// AppendAccessLog stores the entry under an autoincrementing key. The
// fallback keeps access logs only so the store contract stays total; the
// durable journal lives in the primary.
func (s *Store) AppendAccessLog(_ context.Context, e *model.AccessLog) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAccessLogs)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		e.ID = int64(seq)
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		raw, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return b.Put(key, raw)
	})
}
