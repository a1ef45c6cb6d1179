package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Поддерживаемые драйверы хранилища
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Store    StoreConfig    // Выбор хранилища коллекций
	Database DatabaseConfig // Настройки подключения к БД (для драйвера postgres)
	JWT      JWTConfig      // Настройки JWT авторизации
	Log      LogConfig      // Настройки логирования
	Rules    RulesConfig    // Настройки правил состава команды
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"3000"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// StoreConfig содержит настройки хранилища коллекций
type StoreConfig struct {
	Driver  string `envconfig:"STORE_DRIVER" default:"file"`
	DataDir string `envconfig:"STORE_DATA_DIR" default:"./data"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"capstone"`
	Password string `envconfig:"DB_PASSWORD" default:"capstone_pass"`
	Name     string `envconfig:"DB_NAME" default:"capstone"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// RulesConfig содержит список атрибутов пользователя, на которые могут ссылаться правила
type RulesConfig struct {
	Attributes []string `envconfig:"RULE_ATTRIBUTES" default:"learning_path,university,learning_group,batch_id"`
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SlogLevel возвращает уровень логирования для slog
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverFile:
		if c.Store.DataDir == "" {
			return errors.New("STORE_DATA_DIR is required for the file store")
		}
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.JWT.ExpirationHours <= 0 {
		return errors.New("JWT_EXPIRATION_HOURS must be positive")
	}
	return nil
}

// Load читает конфигурацию из .env файла (если есть) и переменных окружения
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// Переменные окружения процесса имеют приоритет над .env
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
