package main

import (
	"CloudVault/internal/config"
	"CloudVault/internal/groq"
	"CloudVault/internal/handlers"
	"CloudVault/internal/middleware"
	"CloudVault/internal/repo/bolt"
	"CloudVault/internal/repo/dual"
	"CloudVault/internal/repo/postgres"
	"CloudVault/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// первичное хранилище (Postgres)
	gormDB, err := postgres.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize primary database", "error", err)
	}
	primary := postgres.New(gormDB)

	// локальный фолбэк (bbolt): переживает недоступность первичного
	fallback, err := bolt.Open(cfg.FallbackDBPath)
	if err != nil {
		sugar.Fatalw("failed to open fallback store", "path", cfg.FallbackDBPath, "error", err)
	}
	defer func() {
		if err := fallback.Close(); err != nil {
			sugar.Errorw("failed to close fallback store", "error", err)
		}
	}()

	store := dual.New(primary, fallback, sugar, cfg.StoreTimeout)

	userService := service.NewUserService(store, sugar)
	shareService := service.NewShareService(store, sugar)
	fileService := service.NewFileService(store, sugar)
	accessService := service.NewAccessService(store, sugar)
	notificationService := service.NewNotificationService(store, sugar)
	classifier := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)

	h := handlers.NewHandler(
		userService,
		shareService,
		fileService,
		accessService,
		notificationService,
		classifier,
		sugar,
		cfg,
	)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"FallbackDBPath", cfg.FallbackDBPath,
		"StoreTimeout", cfg.StoreTimeout,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
