package service

import (
	"CloudVault/internal/repo/bolt"
	"CloudVault/internal/repo/dual"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// newTestStore поднимает двойной адаптер поверх двух bolt-хранилищ и отдаёт
// прямые ручки на оба: тесты пишут в фолбэк напрямую, имитируя данные,
// созданные во время сбоя первичного хранилища.
func newTestStore(t *testing.T) (*dual.Store, *bolt.Store, *bolt.Store) {
	t.Helper()

	open := func(name string) *bolt.Store {
		s, err := bolt.Open(filepath.Join(t.TempDir(), name))
		if err != nil {
			t.Fatalf("open bolt: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	primary := open("primary.db")
	fallback := open("fallback.db")
	return dual.New(primary, fallback, zap.NewNop().Sugar(), time.Second), primary, fallback
}
