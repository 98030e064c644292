package handlers

import (
	"CloudVault/internal/config"
	"CloudVault/internal/middleware"
	"CloudVault/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	shareService *service.ShareService,
	fileService *service.FileService,
	accessService *service.AccessService,
	notificationService *service.NotificationService,
	classifier Classifier,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	shareHandler := NewShareHandler(shareService, logger)
	fileHandler := NewFileHandler(fileService, logger)
	accessHandler := NewAccessHandler(accessService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)
	analyzeHandler := NewAnalyzeHandler(classifier, logger)

	// Health
	r.Get("/api/", Health)

	// User routes
	r.Post("/api/register", userHandler.Register)
	r.Post("/api/login", userHandler.Login)
	r.Get("/api/me", userHandler.Me)

	// Share resolution (анонимный доступ по ключу)
	r.Get("/api/shared-files/{key}", shareHandler.Resolve)

	// File routes
	r.Get("/api/files/{ownerID}", fileHandler.List)
	r.Post("/api/files/{ownerID}", fileHandler.Save)
	r.Delete("/api/files/{ownerID}/{fileID}", fileHandler.Delete)

	// Access request workflow
	r.Post("/api/access-requests", accessHandler.Create)
	r.Get("/api/access-requests/{ownerID}", accessHandler.ListPending)
	r.Patch("/api/access-requests/{id}", accessHandler.UpdateStatus)
	r.Post("/api/check-approval", accessHandler.CheckApproval)

	// Notifications
	r.Get("/api/notifications/{userID}", notificationHandler.List)
	r.Patch("/api/notifications/{id}", notificationHandler.MarkRead)

	// External classifier
	r.Post("/api/analyze", analyzeHandler.Analyze)

	return &Handler{Router: r}
}

// Health отвечает фиксированным статусом; используется мониторингом.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "CloudVault API is running",
		"version": "1.0.0",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
