package service

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func seedOwnerWithFile(t *testing.T, users *UserService, files *FileService, email string) (*model.Account, *model.File) {
	t.Helper()
	ctx := context.Background()
	owner, err := users.Register(ctx, email, "pw")
	assert.NoError(t, err)
	_, err = files.Save(ctx, owner.ID, []model.File{{Name: "secret.docx", Size: 7}})
	assert.NoError(t, err)
	list, err := files.List(ctx, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	return owner, &list[0]
}

func TestAccessService_Create(t *testing.T) {
	store, _, _ := newTestStore(t)
	logger := zap.NewNop().Sugar()
	users := NewUserService(store, logger)
	files := NewFileService(store, logger)
	access := NewAccessService(store, logger)
	notifications := NewNotificationService(store, logger)
	ctx := context.Background()

	owner, file := seedOwnerWithFile(t, users, files, "owner@example.com")

	t.Run("sentinel owner resolved from file", func(t *testing.T) {
		req, err := access.Create(ctx, file.ID, "undefined", "AB12CD34")
		assert.NoError(t, err)
		assert.Equal(t, owner.ID, req.OwnerID)
		assert.Equal(t, model.RequestPending, req.Status)
		assert.Equal(t, "secret.docx", req.FileName)
	})

	t.Run("notification created for owner", func(t *testing.T) {
		list, err := notifications.List(ctx, owner.ID)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "Decryption Request", list[0].Title)
		assert.Equal(t, "alert", list[0].Type)
		assert.Contains(t, list[0].Message, "AB12CD34")
	})

	t.Run("unknown file", func(t *testing.T) {
		_, err := access.Create(ctx, uuid.NewString(), "undefined", "AB12CD34")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("empty file id", func(t *testing.T) {
		_, err := access.Create(ctx, "", "", "AB12CD34")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestAccessService_StatusTransitions(t *testing.T) {
	store, _, _ := newTestStore(t)
	logger := zap.NewNop().Sugar()
	users := NewUserService(store, logger)
	files := NewFileService(store, logger)
	access := NewAccessService(store, logger)
	ctx := context.Background()

	_, file := seedOwnerWithFile(t, users, files, "transitions@example.com")
	req, err := access.Create(ctx, file.ID, "", "AB12CD34")
	assert.NoError(t, err)

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := access.UpdateStatus(ctx, req.ID, "pending")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("pending gate closed", func(t *testing.T) {
		ok, err := access.CheckApproval(ctx, file.ID, "AB12CD34")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("approve opens gate", func(t *testing.T) {
		updated, err := access.UpdateStatus(ctx, req.ID, model.RequestApproved)
		assert.NoError(t, err)
		assert.Equal(t, model.RequestApproved, updated.Status)

		ok, err := access.CheckApproval(ctx, file.ID, "AB12CD34")
		assert.NoError(t, err)
		assert.True(t, ok)

		// пара (файл, чужой ключ) не проходит
		ok, err = access.CheckApproval(ctx, file.ID, "FFFFFFFF")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("terminal status never reverts", func(t *testing.T) {
		_, err := access.UpdateStatus(ctx, req.ID, model.RequestDenied)
		assert.ErrorIs(t, err, ErrRequestResolved)

		current, err := store.RequestByID(ctx, req.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.RequestApproved, current.Status)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := access.UpdateStatus(ctx, uuid.NewString(), model.RequestApproved)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestAccessService_ListPendingMergesFallback(t *testing.T) {
	store, _, fallback := newTestStore(t)
	logger := zap.NewNop().Sugar()
	users := NewUserService(store, logger)
	files := NewFileService(store, logger)
	access := NewAccessService(store, logger)
	ctx := context.Background()

	owner, file := seedOwnerWithFile(t, users, files, "merge@example.com")

	_, err := access.Create(ctx, file.ID, "", "AB12CD34")
	assert.NoError(t, err)

	// запрос, созданный во время сбоя первичного хранилища
	stranded := &model.AccessRequest{
		ID:           uuid.NewString(),
		FileID:       file.ID,
		OwnerID:      owner.ID,
		RequesterKey: "FFFFFFFF",
		Status:       model.RequestPending,
	}
	assert.NoError(t, fallback.CreateRequest(ctx, stranded))

	pending, err := access.ListPending(ctx, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
	for _, p := range pending {
		assert.Equal(t, "secret.docx", p.FileName)
	}
}
