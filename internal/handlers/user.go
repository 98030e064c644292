package handlers

import (
	"CloudVault/internal/config"
	"CloudVault/internal/middleware"
	"CloudVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, логин и интроспекция сессии.
type UserHandler struct {
	service *service.UserService
	logger  *zap.SugaredLogger
	config  *config.Config
}

func NewUserHandler(service *service.UserService, logger *zap.SugaredLogger, config *config.Config) *UserHandler {
	return &UserHandler{service: service, logger: logger, config: config}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register создаёт аккаунт и сразу ставит cookie сессии.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		h.logger.Errorw("register failed", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, account.ID, h.config.AuthSecret); err != nil {
		h.logger.Errorw("set login cookie failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, toAccountDTO(account))
}

// Login сверяет учётные данные; успешный вход ротирует сессионную соль,
// поэтому в ответе всегда свежий ключ доступа.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Errorw("login failed", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := middleware.SetLoginCookie(w, account.ID, h.config.AuthSecret); err != nil {
		h.logger.Errorw("set login cookie failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(account))
}

// Me возвращает аккаунт текущей сессии по cookie.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	account, err := h.service.AccountByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(account))
}
