package handlers

import (
	"CloudVault/internal/repo"
	"CloudVault/internal/service"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationHandler — лента уведомлений и пометка прочтения.
type NotificationHandler struct {
	service *service.NotificationService
	logger  *zap.SugaredLogger
}

func NewNotificationHandler(service *service.NotificationService, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{service: service, logger: logger}
}

// List возвращает уведомления пользователя, новые первыми.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	notifications, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("list notifications failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]notificationDTO, 0, len(notifications))
	for i := range notifications {
		out = append(out, toNotificationDTO(&notifications[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// MarkRead устанавливает флаг прочтения.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	n, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Errorw("mark notification read failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toNotificationDTO(n))
}
