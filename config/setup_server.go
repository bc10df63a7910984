package config

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const mebibyte = 1 << 20

// DefaultAllowedTypes : типы файлов, разрешённые к загрузке по умолчанию
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/csv",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"text/plain",
}

type AppConfig struct {
	DatabaseConfig DatabaseConfig  `yaml:"databaseConfig"`
	RedisConfig    RedisConfig     `yaml:"redisConfig"`
	ServerAddr     string          `yaml:"serverAddr"`
	S3Config       S3Config        `yaml:"s3Config"`
	JWT            JWTConfig       `yaml:"jwt"`
	Admin          AdminConfig     `yaml:"admin"`
	TTL            TTL             `yaml:"TTL"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Upload         UploadConfig    `yaml:"upload"`
	Logger         LoggerConfig    `yaml:"logger"`
}

// LoadConfig : читает yaml, затем переменные окружения (включая .env) перекрывают значения файла
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

func (cfg *AppConfig) applyEnv() {
	overrides := map[string]*string{
		"FILESHARE_DB_DSN":         &cfg.DatabaseConfig.DSN,
		"FILESHARE_JWT_SECRET":     &cfg.JWT.SecretKey,
		"FILESHARE_ADMIN_TOKEN":    &cfg.Admin.AdminToken,
		"FILESHARE_REDIS_PASSWORD": &cfg.RedisConfig.Password,
	}
	for key, target := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*target = value
		}
	}
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.TTL.Credential <= 0 {
		cfg.TTL.Credential = 3600
	}
	if cfg.TTL.FileCache <= 0 {
		cfg.TTL.FileCache = 300
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = 60
	}
	if cfg.RateLimit.SensitiveLimit <= 0 {
		cfg.RateLimit.SensitiveLimit = 10
	}
	if cfg.RateLimit.DefaultLimit <= 0 {
		cfg.RateLimit.DefaultLimit = 20
	}
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = 50 * mebibyte
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = append([]string(nil), DefaultAllowedTypes...)
	}
	if cfg.S3Config.Timeout == "" {
		cfg.S3Config.Timeout = (5 * time.Second).String()
	}
	if cfg.JWT.AccessTokenTTL == "" {
		cfg.JWT.AccessTokenTTL = "15m"
	}
	if cfg.JWT.RefreshTokenTTL == "" {
		cfg.JWT.RefreshTokenTTL = "720h"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
