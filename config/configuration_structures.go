package config

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
	// Timeout : ограничение на вызовы хранилища при выдаче ссылок
	Timeout string `yaml:"timeout"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

type AdminConfig struct {
	AdminToken string `yaml:"admin_token"`
}

// TTL : значения в секундах
type TTL struct {
	Credential int `yaml:"credential"`
	FileCache  int `yaml:"file_cache"`
}

type RateLimitConfig struct {
	Window         int `yaml:"window"`
	SensitiveLimit int `yaml:"sensitive_limit"`
	DefaultLimit   int `yaml:"default_limit"`
}

type UploadConfig struct {
	MaxBytes     int64    `yaml:"max_bytes"`
	AllowedTypes []string `yaml:"allowed_types"`
}

type LoggerConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func (t TTL) CredentialTTL() time.Duration {
	return time.Duration(t.Credential) * time.Second
}

func (t TTL) FileCacheTTL() time.Duration {
	return time.Duration(t.FileCache) * time.Second
}

func (c RateLimitConfig) WindowDuration() time.Duration {
	return time.Duration(c.Window) * time.Second
}

// BlobTimeout : при ошибке разбора возвращает 5 секунд
func (c S3Config) BlobTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil || timeout <= 0 {
		return 5 * time.Second
	}
	return timeout
}
