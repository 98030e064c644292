package handlers

import (
	"CloudVault/internal/repo"
	"CloudVault/internal/service"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShareHandler — разрешение ключа доступа; единственная анонимная точка
// входа получателей.
type ShareHandler struct {
	service *service.ShareService
	logger  *zap.SugaredLogger
}

func NewShareHandler(service *service.ShareService, logger *zap.SugaredLogger) *ShareHandler {
	return &ShareHandler{service: service, logger: logger}
}

type sharedFilesResponse struct {
	Owner ownerDTO  `json:"owner"`
	Files []fileDTO `json:"files"`
}

// Resolve ищет владельца по ключу и возвращает его файлы. Неизвестный ключ
// неотличим от несуществующего — всегда 404 без деталей.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	owner, files, err := h.service.Resolve(r.Context(), key)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "share key not found")
			return
		}
		h.logger.Errorw("share key resolution failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sharedFilesResponse{
		Owner: ownerDTO{ID: owner.ID, Username: owner.Username},
		Files: toFileDTOs(files),
	})
}
