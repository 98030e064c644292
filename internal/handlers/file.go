package handlers

import (
	"CloudVault/internal/model"
	"CloudVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler — список, пакетное сохранение и удаление файлов владельца.
type FileHandler struct {
	service *service.FileService
	logger  *zap.SugaredLogger
}

func NewFileHandler(service *service.FileService, logger *zap.SugaredLogger) *FileHandler {
	return &FileHandler{service: service, logger: logger}
}

// inboundFile — то, что присылает клиент при сохранении. Идентификатор и
// владелец назначаются сервером.
type inboundFile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Size          int64   `json:"size"`
	Type          string  `json:"type"`
	URL           string  `json:"url"`
	Category      *string `json:"category"`
	RiskLevel     *string `json:"riskLevel"`
	Verdict       *string `json:"verdict"`
	CipherContent []byte  `json:"cipherContent"`
	IV            []byte  `json:"iv"`
}

// List возвращает файлы владельца; некорректный идентификатор — пустой
// список, не ошибка (легаси-клиенты).
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	files, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Errorw("list files failed", "owner_id", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toFileDTOs(files))
}

// Save апсертит пачку файлов. В ответе признак primaryOk: клиент видит, что
// запись легла только в локальный фолбэк.
func (h *FileHandler) Save(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var inbound []inboundFile
	if err := json.NewDecoder(r.Body).Decode(&inbound); err != nil {
		writeError(w, http.StatusBadRequest, "expected a JSON array of files")
		return
	}

	files := make([]model.File, 0, len(inbound))
	for _, in := range inbound {
		files = append(files, model.File{
			ID:            in.ID,
			Name:          in.Name,
			Size:          in.Size,
			Type:          in.Type,
			URL:           in.URL,
			Category:      in.Category,
			RiskLevel:     in.RiskLevel,
			Verdict:       in.Verdict,
			CipherContent: in.CipherContent,
			IV:            in.IV,
		})
	}

	primaryOk, err := h.service.Save(r.Context(), ownerID, files)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOwnerID) {
			writeError(w, http.StatusBadRequest, "invalid owner id")
			return
		}
		h.logger.Errorw("save files failed", "owner_id", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "primaryOk": primaryOk})
}

// Delete удаляет файл в обоих хранилищах; идемпотентен.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	fileID := chi.URLParam(r, "fileID")

	primaryOk, err := h.service.Delete(r.Context(), ownerID, fileID)
	if err != nil {
		h.logger.Errorw("delete file failed", "owner_id", ownerID, "file_id", fileID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "primaryOk": primaryOk})
}
