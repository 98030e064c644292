package repo

import (
	"CloudVault/internal/model"
	"context"
	"errors"
)

// ErrNotFound возвращается всеми реализациями, когда запись отсутствует.
// Отличать "нет записи" от "хранилище недоступно" обязана каждая реализация:
// адаптер двойного хранилища принимает решения о фолбэке именно по этому
// признаку.
var ErrNotFound = errors.New("record not found")

// Store — единый контракт хранилища записей (аккаунты, файлы, запросы,
// уведомления). Реализуется первичным (Postgres) и локальным (bbolt)
// хранилищами; адаптер в repo/dual комбинирует обе реализации.
type Store interface {
	// Аккаунты
	CreateAccount(ctx context.Context, a *model.Account) error
	AccountByEmail(ctx context.Context, email string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	UpdateSessionSalt(ctx context.Context, accountID, salt string) error

	// Файлы: upsert по натуральному ключу (owner_id, name)
	FileByID(ctx context.Context, id string) (*model.File, error)
	ListFiles(ctx context.Context, ownerID string) ([]model.File, error)
	UpsertFile(ctx context.Context, f *model.File) error
	DeleteFile(ctx context.Context, ownerID, fileID string) error

	// Запросы на расшифровку
	CreateRequest(ctx context.Context, r *model.AccessRequest) error
	RequestByID(ctx context.Context, id string) (*model.AccessRequest, error)
	UpdateRequestStatus(ctx context.Context, id, status string) (*model.AccessRequest, error)
	ListPendingRequests(ctx context.Context, ownerID string) ([]model.AccessRequest, error)
	HasApprovedRequest(ctx context.Context, fileID, requesterKey string) (bool, error)

	// Уведомления
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)

	// Журнал доступа (только первичное хранилище делает его долговечным;
	// локальная реализация принимает записи, чтобы контракт был полным)
	AppendAccessLog(ctx context.Context, e *model.AccessLog) error
}
