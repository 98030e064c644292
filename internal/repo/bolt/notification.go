package bolt

import (
	"CloudVault/internal/model"
	"context"
	"encoding/json"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

func (s *Store) CreateNotification(_ context.Context, n *model.Notification) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now().UTC()
		}
		return putJSON(tx.Bucket(bucketNotifications), n.ID, n)
	})
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(_ context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotifications).ForEach(func(_, raw []byte) error {
			var n model.Notification
			if err := json.Unmarshal(raw, &n); err != nil {
				return err
			}
			if n.UserID == userID {
				notifications = append(notifications, n)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID < notifications[j].ID
	})
	return notifications, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		if err := getJSON(b, id, &n); err != nil {
			return err
		}
		n.IsRead = true
		return putJSON(b, id, &n)
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}
