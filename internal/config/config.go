package config

import (
	"fmt"
	"strings"
	"time"

	"troubleshoot-titans/internal/utils"

	"github.com/kelseyhightower/envconfig"
)

// Допустимые значения переключателей.
const (
	AIClientOpenAI = "openai"
	AIClientOllama = "ollama"

	ProfileStoreFirestore = "firestore"
	ProfileStorePostgres  = "postgres"

	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Config содержит конфигурацию сервиса
type Config struct {
	// Сервер
	Env            string        `envconfig:"ENV" default:"development"`
	Port           string        `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding    string        `envconfig:"LOG_ENCODING" default:"json"`
	LogDevelopment bool          `envconfig:"LOG_DEVELOPMENT" default:"false"`
	AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownWait   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"troubleshoot"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	DBPassword    string        `ignored:"true"` // Секрет db_password

	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `ignored:"true"` // Секрет redis_password, опционален

	// RabbitMQ. Пустой URL - события завершения применяются напрямую.
	RabbitMQURL     string `envconfig:"RABBITMQ_URL"`
	CompletionQueue string `envconfig:"COMPLETION_QUEUE" default:"completion_events"`

	// Аутентификация и профили
	AuthProvider            string `envconfig:"AUTH_PROVIDER" default:"jwt"`
	FirebaseCredentialsPath string `envconfig:"FIREBASE_CREDENTIALS_PATH"`
	FirebaseProjectID       string `envconfig:"FIREBASE_PROJECT_ID"`
	ProfileStore            string `envconfig:"PROFILE_STORE"`
	JWTSecret               string `ignored:"true"` // Секрет jwt_secret

	// Генерация контента
	AIClientType          string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL             string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel               string        `envconfig:"AI_MODEL" default:"openai/gpt-4o-mini"`
	AITimeout             time.Duration `envconfig:"AI_TIMEOUT" default:"90s"`
	AITemperature         float32       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	AIMaxCompletionTokens int           `envconfig:"AI_MAX_COMPLETION_TOKENS" default:"2048"`
	AIMaxPromptTokens     int           `envconfig:"AI_MAX_PROMPT_TOKENS" default:"4000"`
	AIAPIKey              string        `ignored:"true"` // Секрет ai_api_key
	GenerateRatePerMinute uint          `envconfig:"GENERATE_RATE_PER_MINUTE" default:"5"`

	// Игровые настройки из YAML/env
	GameConfigPath string `envconfig:"GAME_CONFIG_PATH" default:"config/game.yml"`
	Game           GameConfig `ignored:"true"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// SafeDSN - DSN без пароля для логов.
func (c *Config) SafeDSN() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения, секретов и файла игровых настроек.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	var err error
	if cfg.DBPassword, err = utils.ReadSecret("db_password"); err != nil {
		return nil, err
	}
	if cfg.RedisPassword, err = utils.ReadOptionalSecret("redis_password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = utils.ReadOptionalSecret("jwt_secret"); err != nil {
		return nil, err
	}
	if cfg.AIAPIKey, err = utils.ReadOptionalSecret("ai_api_key"); err != nil {
		return nil, err
	}

	game, err := LoadGameConfig(cfg.GameConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Game = *game

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize проверяет переключатели и выводит значения по умолчанию, зависящие от других полей.
func (c *Config) normalize() error {
	c.AIClientType = strings.ToLower(c.AIClientType)
	switch c.AIClientType {
	case AIClientOpenAI:
		if c.AIAPIKey == "" {
			return fmt.Errorf("секрет ai_api_key обязателен для AI_CLIENT_TYPE=%s", AIClientOpenAI)
		}
	case AIClientOllama:
	default:
		return fmt.Errorf("неизвестный AI_CLIENT_TYPE: %q", c.AIClientType)
	}

	c.AuthProvider = strings.ToLower(c.AuthProvider)
	switch c.AuthProvider {
	case AuthProviderFirebase:
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH обязателен для AUTH_PROVIDER=%s", AuthProviderFirebase)
		}
	case AuthProviderJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("секрет jwt_secret обязателен для AUTH_PROVIDER=%s", AuthProviderJWT)
		}
	default:
		return fmt.Errorf("неизвестный AUTH_PROVIDER: %q", c.AuthProvider)
	}

	c.ProfileStore = strings.ToLower(c.ProfileStore)
	if c.ProfileStore == "" {
		c.ProfileStore = ProfileStorePostgres
		if c.FirebaseCredentialsPath != "" {
			c.ProfileStore = ProfileStoreFirestore
		}
	}
	switch c.ProfileStore {
	case ProfileStorePostgres:
	case ProfileStoreFirestore:
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH обязателен для PROFILE_STORE=%s", ProfileStoreFirestore)
		}
	default:
		return fmt.Errorf("неизвестный PROFILE_STORE: %q", c.ProfileStore)
	}
	return nil
}
