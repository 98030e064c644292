package service

import (
	"CloudVault/internal/keygen"
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestShareService_Resolve(t *testing.T) {
	store, _, _ := newTestStore(t)
	logger := zap.NewNop().Sugar()
	users := NewUserService(store, logger)
	files := NewFileService(store, logger)
	share := NewShareService(store, logger)
	ctx := context.Background()

	owner, err := users.Register(ctx, "alice@example.com", "pw")
	assert.NoError(t, err)
	_, err = files.Save(ctx, owner.ID, []model.File{{Name: "report.pdf", Size: 42}})
	assert.NoError(t, err)

	key := keygen.Derive(owner.ID, owner.Salt())

	t.Run("exact key", func(t *testing.T) {
		got, gotFiles, err := share.Resolve(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, owner.ID, got.ID)
		assert.Len(t, gotFiles, 1)
	})

	t.Run("lowercase input normalized", func(t *testing.T) {
		got, _, err := share.Resolve(ctx, strings.ToLower(key))
		assert.NoError(t, err)
		assert.Equal(t, owner.ID, got.ID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, _, err := share.Resolve(ctx, "00000000")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

// Аккаунт, зарегистрированный во время сбоя первичного хранилища, живёт
// только в фолбэке; резолвер обязан досмотреть и его.
func TestShareService_ResolveFallbackOnlyAccount(t *testing.T) {
	store, _, fallback := newTestStore(t)
	share := NewShareService(store, zap.NewNop().Sugar())
	ctx := context.Background()

	stranded := &model.Account{ID: uuid.NewString(), Email: "stranded@example.com", Password: "pw", Username: "stranded"}
	assert.NoError(t, fallback.CreateAccount(ctx, stranded))

	got, _, err := share.Resolve(ctx, keygen.Derive(stranded.ID, ""))
	assert.NoError(t, err)
	assert.Equal(t, stranded.ID, got.ID)
}

// При ротации соли старый ключ перестаёт разрешаться немедленно.
func TestShareService_StaleKeyAfterRotation(t *testing.T) {
	store, _, _ := newTestStore(t)
	logger := zap.NewNop().Sugar()
	users := NewUserService(store, logger)
	share := NewShareService(store, logger)
	ctx := context.Background()

	owner, err := users.Register(ctx, "bob@example.com", "pw")
	assert.NoError(t, err)
	oldKey := keygen.Derive(owner.ID, owner.Salt())

	rotated, err := users.Login(ctx, "bob@example.com", "pw")
	assert.NoError(t, err)
	assert.NotEqual(t, owner.Salt(), rotated.Salt())

	_, _, err = share.Resolve(ctx, oldKey)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, _, err := share.Resolve(ctx, keygen.Derive(rotated.ID, rotated.Salt()))
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, got.ID)
}
