package handlers

import (
	"CloudVault/internal/repo"
	"CloudVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccessHandler — жизненный цикл запросов на расшифровку.
type AccessHandler struct {
	service *service.AccessService
	logger  *zap.SugaredLogger
}

func NewAccessHandler(service *service.AccessService, logger *zap.SugaredLogger) *AccessHandler {
	return &AccessHandler{service: service, logger: logger}
}

type createRequestBody struct {
	FileID       string `json:"fileId"`
	OwnerID      string `json:"ownerId"`
	RequesterKey string `json:"requesterKey"`
}

// Create регистрирует pending-запрос от анонимного получателя.
func (h *AccessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RequesterKey == "" {
		writeError(w, http.StatusBadRequest, "fileId and requesterKey are required")
		return
	}

	req, err := h.service.Create(r.Context(), body.FileID, body.OwnerID, body.RequesterKey)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		h.logger.Errorw("create access request failed", "file_id", body.FileID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(req))
}

// ListPending возвращает ожидающие запросы владельца.
func (h *AccessHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	requests, err := h.service.ListPending(r.Context(), ownerID)
	if err != nil {
		h.logger.Errorw("list pending requests failed", "owner_id", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]requestDTO, 0, len(requests))
	for i := range requests {
		out = append(out, toRequestDTO(&requests[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateStatusBody struct {
	Status string `json:"status"`
}

// UpdateStatus — approve/deny. Повторный перевод терминального запроса — 409.
func (h *AccessHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "status must be approved or denied")
		case errors.Is(err, repo.ErrNotFound):
			writeError(w, http.StatusNotFound, "request not found")
		case errors.Is(err, service.ErrRequestResolved):
			writeError(w, http.StatusConflict, "request already resolved")
		default:
			h.logger.Errorw("update request status failed", "request_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(updated))
}

type checkApprovalBody struct {
	FileID       string `json:"fileId"`
	RequesterKey string `json:"requesterKey"`
}

// CheckApproval — булев ответ, материал расшифровки сервером не передаётся.
func (h *AccessHandler) CheckApproval(w http.ResponseWriter, r *http.Request) {
	var body checkApprovalBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "fileId and requesterKey are required")
		return
	}

	approved, err := h.service.CheckApproval(r.Context(), body.FileID, body.RequesterKey)
	if err != nil {
		h.logger.Errorw("check approval failed", "file_id", body.FileID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": approved})
}
