// Package dual composes the primary (remote relational) store and the local
// fallback store into one logical record store.
//
// Per-operation contract: writes go to the primary first and spill into the
// fallback when the primary fails, so no logical write is lost; reads return
// a single store's view chosen by availability, never a union. The only merge
// happens on file listings, where fallback-only records are replayed into a
// reachable primary (read repair). Primary calls are bounded by a timeout;
// expiry counts as primary failure, not a fatal error. A hard error surfaces
// only when both stores fail.
package dual

import (
	"CloudVault/internal/model"
	"CloudVault/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrBothStoresFailed reports that neither store could serve the operation.
var ErrBothStoresFailed = errors.New("both primary and fallback stores failed")

// Store is the dual-store adapter. Write methods report primaryOk so callers
// can surface silent primary degradation instead of swallowing it.
type Store struct {
	primary  repo.Store
	fallback repo.Store
	logger   *zap.SugaredLogger
	timeout  time.Duration
}

func New(primary, fallback repo.Store, logger *zap.SugaredLogger, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{primary: primary, fallback: fallback, logger: logger, timeout: timeout}
}

func (d *Store) primaryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

// unavailable distinguishes store failure from an honest "no such record".
func unavailable(err error) bool {
	return err != nil && !errors.Is(err, repo.ErrNotFound)
}

func (d *Store) warnFallback(op string, err error) {
	d.logger.Warnw("primary store unavailable, using fallback", "op", op, "error", err)
}

func bothFailed(op string, perr, ferr error) error {
	return fmt.Errorf("%s: %w (primary: %v; fallback: %v)", op, ErrBothStoresFailed, perr, ferr)
}

// --- Accounts ---

func (d *Store) CreateAccount(ctx context.Context, a *model.Account) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	perr := d.primary.CreateAccount(pctx, a)
	if perr == nil {
		return true, nil
	}
	d.warnFallback("create account", perr)
	if ferr := d.fallback.CreateAccount(ctx, a); ferr != nil {
		return false, bothFailed("create account", perr, ferr)
	}
	return false, nil
}

// AccountByEmail falls through to the fallback both when the primary is down
// and when it simply does not hold the record (accounts registered during an
// outage live only in the fallback).
func (d *Store) AccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	a, perr := d.primary.AccountByEmail(pctx, email)
	if perr == nil {
		return a, nil
	}
	if unavailable(perr) {
		d.warnFallback("account by email", perr)
	}
	a, ferr := d.fallback.AccountByEmail(ctx, email)
	if ferr == nil {
		return a, nil
	}
	if errors.Is(perr, repo.ErrNotFound) && errors.Is(ferr, repo.ErrNotFound) {
		return nil, repo.ErrNotFound
	}
	if unavailable(perr) && unavailable(ferr) {
		return nil, bothFailed("account by email", perr, ferr)
	}
	return nil, ferr
}

// ListAccounts returns one store's account scan: the primary's when it is
// reachable, otherwise the fallback's. primaryOk tells the caller which view
// it got, so the resolver can decide to scan fallback-only accounts as well.
func (d *Store) ListAccounts(ctx context.Context) ([]model.Account, bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	accounts, perr := d.primary.ListAccounts(pctx)
	if perr == nil {
		return accounts, true, nil
	}
	d.warnFallback("list accounts", perr)
	accounts, ferr := d.fallback.ListAccounts(ctx)
	if ferr != nil {
		return nil, false, bothFailed("list accounts", perr, ferr)
	}
	return accounts, false, nil
}

// FallbackAccounts exposes the local store's account scan directly.
func (d *Store) FallbackAccounts(ctx context.Context) ([]model.Account, error) {
	return d.fallback.ListAccounts(ctx)
}

func (d *Store) UpdateSessionSalt(ctx context.Context, accountID, salt string) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	perr := d.primary.UpdateSessionSalt(pctx, accountID, salt)
	if perr == nil {
		// keep a fallback copy of the account in sync when one exists
		if ferr := d.fallback.UpdateSessionSalt(ctx, accountID, salt); ferr != nil && !errors.Is(ferr, repo.ErrNotFound) {
			d.logger.Warnw("fallback salt update failed", "account_id", accountID, "error", ferr)
		}
		return true, nil
	}
	if unavailable(perr) {
		d.warnFallback("update session salt", perr)
	}
	ferr := d.fallback.UpdateSessionSalt(ctx, accountID, salt)
	if ferr == nil {
		return false, nil
	}
	if errors.Is(perr, repo.ErrNotFound) && errors.Is(ferr, repo.ErrNotFound) {
		return false, repo.ErrNotFound
	}
	return false, bothFailed("update session salt", perr, ferr)
}

// --- Files ---

func (d *Store) FileByID(ctx context.Context, id string) (*model.File, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	f, perr := d.primary.FileByID(pctx, id)
	if perr == nil {
		return f, nil
	}
	if unavailable(perr) {
		d.warnFallback("file by id", perr)
	}
	f, ferr := d.fallback.FileByID(ctx, id)
	if ferr == nil {
		return f, nil
	}
	if errors.Is(perr, repo.ErrNotFound) && errors.Is(ferr, repo.ErrNotFound) {
		return nil, repo.ErrNotFound
	}
	if unavailable(perr) && unavailable(ferr) {
		return nil, bothFailed("file by id", perr, ferr)
	}
	return nil, ferr
}

// ListFiles reads the primary view and, when the primary is reachable,
// replays fallback-only records (keyed by owner+name) into it so writes that
// landed in the fallback during an outage are not silently dropped. Fallback
// contents are left in place: the stores are never reconciled destructively.
func (d *Store) ListFiles(ctx context.Context, ownerID string) ([]model.File, bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	files, perr := d.primary.ListFiles(pctx, ownerID)
	if perr != nil {
		d.warnFallback("list files", perr)
		files, ferr := d.fallback.ListFiles(ctx, ownerID)
		if ferr != nil {
			return nil, false, bothFailed("list files", perr, ferr)
		}
		return files, false, nil
	}

	local, ferr := d.fallback.ListFiles(ctx, ownerID)
	if ferr != nil {
		d.logger.Warnw("fallback read failed during read repair", "owner_id", ownerID, "error", ferr)
		return files, true, nil
	}
	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[f.Name] = true
	}
	for _, f := range local {
		if known[f.Name] {
			continue
		}
		f := f
		rctx, rcancel := d.primaryCtx(ctx)
		err := d.primary.UpsertFile(rctx, &f)
		rcancel()
		if err != nil {
			d.logger.Warnw("read repair failed for fallback-only file", "owner_id", ownerID, "name", f.Name, "error", err)
			continue
		}
		files = append(files, f)
	}
	return files, true, nil
}

func (d *Store) UpsertFile(ctx context.Context, f *model.File) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	perr := d.primary.UpsertFile(pctx, f)
	if perr == nil {
		return true, nil
	}
	d.warnFallback("upsert file", perr)
	if ferr := d.fallback.UpsertFile(ctx, f); ferr != nil {
		return false, bothFailed("upsert file", perr, ferr)
	}
	return false, nil
}

// DeleteFile applies to both stores: leaving a fallback copy behind would let
// read repair resurrect a deleted record.
func (d *Store) DeleteFile(ctx context.Context, ownerID, fileID string) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	perr := d.primary.DeleteFile(pctx, ownerID, fileID)
	ferr := d.fallback.DeleteFile(ctx, ownerID, fileID)
	if perr == nil {
		return true, nil
	}
	d.warnFallback("delete file", perr)
	if ferr != nil {
		return false, bothFailed("delete file", perr, ferr)
	}
	return false, nil
}

// --- Access requests ---

func (d *Store) CreateRequest(ctx context.Context, r *model.AccessRequest) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	perr := d.primary.CreateRequest(pctx, r)
	if perr == nil {
		return true, nil
	}
	d.warnFallback("create request", perr)
	if ferr := d.fallback.CreateRequest(ctx, r); ferr != nil {
		return false, bothFailed("create request", perr, ferr)
	}
	return false, nil
}

func (d *Store) RequestByID(ctx context.Context, id string) (*model.AccessRequest, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	r, perr := d.primary.RequestByID(pctx, id)
	if perr == nil {
		return r, nil
	}
	if unavailable(perr) {
		d.warnFallback("request by id", perr)
	}
	r, ferr := d.fallback.RequestByID(ctx, id)
	if ferr == nil {
		return r, nil
	}
	if errors.Is(perr, repo.ErrNotFound) && errors.Is(ferr, repo.ErrNotFound) {
		return nil, repo.ErrNotFound
	}
	if unavailable(perr) && unavailable(ferr) {
		return nil, bothFailed("request by id", perr, ferr)
	}
	return nil, ferr
}

// UpdateRequestStatus overwrites the status in whichever store holds the
// request. NotFound only when neither store knows the identifier.
func (d *Store) UpdateRequestStatus(ctx context.Context, id, status string) (*model.AccessRequest, bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	r, perr := d.primary.UpdateRequestStatus(pctx, id, status)
	if perr == nil {
		return r, true, nil
	}
	if unavailable(perr) {
		d.warnFallback("update request status", perr)
	}
	r, ferr := d.fallback.UpdateRequestStatus(ctx, id, status)
	if ferr == nil {
		return r, false, nil
	}
	if errors.Is(perr, repo.ErrNotFound) && errors.Is(ferr, repo.ErrNotFound) {
		return nil, false, repo.ErrNotFound
	}
	return nil, false, bothFailed("update request status", perr, ferr)
}

func (d *Store) ListPendingRequests(ctx context.Context, ownerID string) ([]model.AccessRequest, bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	requests, perr := d.primary.ListPendingRequests(pctx, ownerID)
	if perr == nil {
		return requests, true, nil
	}
	d.warnFallback("list pending requests", perr)
	requests, ferr := d.fallback.ListPendingRequests(ctx, ownerID)
	if ferr != nil {
		return nil, false, bothFailed("list pending requests", perr, ferr)
	}
	return requests, false, nil
}

// FallbackPendingRequests exposes the local store's pending scan directly.
func (d *Store) FallbackPendingRequests(ctx context.Context, ownerID string) ([]model.AccessRequest, error) {
	return d.fallback.ListPendingRequests(ctx, ownerID)
}

// HasApprovedRequest consults the fallback when the primary has no approval:
// the approval may have been granted while the primary was unreachable.
func (d *Store) HasApprovedRequest(ctx context.Context, fileID, requesterKey string) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	ok, perr := d.primary.HasApprovedRequest(pctx, fileID, requesterKey)
	if perr == nil && ok {
		return true, nil
	}
	if perr != nil {
		d.warnFallback("check approval", perr)
	}
	ok, ferr := d.fallback.HasApprovedRequest(ctx, fileID, requesterKey)
	if ferr == nil {
		return ok, nil
	}
	if perr != nil {
		return false, bothFailed("check approval", perr, ferr)
	}
	return false, nil
}

// --- Notifications ---

func (d *Store) CreateNotification(ctx context.Context, n *model.Notification) (bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	perr := d.primary.CreateNotification(pctx, n)
	if perr == nil {
		return true, nil
	}
	d.warnFallback("create notification", perr)
	if ferr := d.fallback.CreateNotification(ctx, n); ferr != nil {
		return false, bothFailed("create notification", perr, ferr)
	}
	return false, nil
}

func (d *Store) ListNotifications(ctx context.Context, userID string) ([]model.Notification, bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	notifications, perr := d.primary.ListNotifications(pctx, userID)
	if perr == nil {
		return notifications, true, nil
	}
	d.warnFallback("list notifications", perr)
	notifications, ferr := d.fallback.ListNotifications(ctx, userID)
	if ferr != nil {
		return nil, false, bothFailed("list notifications", perr, ferr)
	}
	return notifications, false, nil
}

// FallbackNotifications exposes the local store's notification scan directly.
func (d *Store) FallbackNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	return d.fallback.ListNotifications(ctx, userID)
}

func (d *Store) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, bool, error) {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	n, perr := d.primary.MarkNotificationRead(pctx, id)
	if perr == nil {
		return n, true, nil
	}
	if unavailable(perr) {
		d.warnFallback("mark notification read", perr)
	}
	n, ferr := d.fallback.MarkNotificationRead(ctx, id)
	if ferr == nil {
		return n, false, nil
	}
	if errors.Is(perr, repo.ErrNotFound) && errors.Is(ferr, repo.ErrNotFound) {
		return nil, false, repo.ErrNotFound
	}
	return nil, false, bothFailed("mark notification read", perr, ferr)
}

// --- Access log ---

// AppendAccessLog writes to the primary only: the journal documents primary
// state and is best effort by contract, so there is no fallback spill.
func (d *Store) AppendAccessLog(ctx context.Context, e *model.AccessLog) error {
	pctx, cancel := d.primaryCtx(ctx)
	defer cancel()
	return d.primary.AppendAccessLog(pctx, e)
}
