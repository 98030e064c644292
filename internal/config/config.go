package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Хранилища
	DatabaseDSN    string `env:"DATABASE_URI"`
	FallbackDBPath string `env:"FALLBACK_DB_PATH"`
	// Таймаут операций первичного хранилища; превышение трактуется как его
	// недоступность и включает фолбэк
	StoreTimeout time.Duration `env:"STORE_TIMEOUT"`

	// Сервер
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Внешний классификатор
	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к первичной БД (Postgres)")
	flag.StringVar(&cfg.FallbackDBPath, "fallback-db", cfg.FallbackDBPath, "путь к файлу локального фолбэк-хранилища")
	flag.DurationVar(&cfg.StoreTimeout, "store-timeout", cfg.StoreTimeout, "таймаут операций первичного хранилища")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи cookie сессии")
	flag.StringVar(&cfg.GroqAPIKey, "groq-key", cfg.GroqAPIKey, "API-ключ внешнего классификатора")
	flag.StringVar(&cfg.GroqModel, "groq-model", cfg.GroqModel, "модель внешнего классификатора")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.GroqModel == "" {
		cfg.GroqModel = "llama-3.3-70b-versatile"
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	if cfg.FallbackDBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.FallbackDBPath = filepath.Join(home, "cloudvault_fallback.db")
	}
	// BaseURL должен быть в виде "address:port" (без схемы и пути)
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:5000"
	}

	return cfg
}
