package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrAIGenerationFailed - ошибка при обращении к модели.
var ErrAIGenerationFailed = errors.New("ai generation failed")

// Поддерживаемые типы клиентов.
const (
	ClientTypeOpenAI = "openai"
	ClientTypeOllama = "ollama"
)

// GenerationParams - параметры одного запроса. Schema включает структурированный вывод.
type GenerationParams struct {
	Temperature *float32
	MaxTokens   int
	Schema      *ResponseSchema
}

// UsageInfo - использование токенов одним запросом.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AIClient - интерфейс генеративного сервиса.
type AIClient interface {
	// GenerateText отправляет системный промт и ввод пользователя и возвращает текст ответа.
	GenerateText(ctx context.Context, userID, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error)
	// Model возвращает имя модели.
	Model() string
}

// ClientConfig - настройки подключения к модели.
type ClientConfig struct {
	Type    string
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// NewAIClient создает клиента по типу из конфигурации.
func NewAIClient(cfg ClientConfig, logger *zap.Logger) (AIClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Type {
	case ClientTypeOpenAI:
		return newOpenAIClient(cfg, httpClient, logger), nil
	case ClientTypeOllama:
		return newOllamaClient(cfg, httpClient, logger)
	default:
		return nil, fmt.Errorf("unsupported ai client type: %q", cfg.Type)
	}
}
