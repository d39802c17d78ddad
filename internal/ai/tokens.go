package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const fallbackEncoding = "cl100k_base"

// TokenCounter оценивает размер текста в токенах.
type TokenCounter interface {
	Count(text string) int
}

// tiktokenCounter лениво загружает словарь. Если загрузка не удалась, считает ~4 байта на токен.
type tiktokenCounter struct {
	model  string
	logger *zap.Logger

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewTokenCounter создает счетчик для модели. Неизвестные модели используют cl100k_base.
func NewTokenCounter(model string, logger *zap.Logger) TokenCounter {
	return &tiktokenCounter{model: model, logger: logger}
}

func (c *tiktokenCounter) Count(text string) int {
	c.once.Do(func() {
		enc, err := tiktoken.EncodingForModel(c.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding(fallbackEncoding)
		}
		if err != nil {
			c.logger.Warn("Tokenizer unavailable, using byte estimate", zap.String("model", c.model), zap.Error(err))
			return
		}
		c.enc = enc
	})
	if c.enc == nil {
		return (len(text) + 3) / 4
	}
	return len(c.enc.Encode(text, nil, nil))
}
