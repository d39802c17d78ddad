package models

import "context"

// Session - явная идентичность пользователя для одного запроса.
// Создается middleware аутентификации и передается в сервисы.
type Session struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Provider    string `json:"provider"`
}

type contextKey string

// SessionContextKey - ключ для хранения *Session в context.Context.
const SessionContextKey contextKey = "session"

// WithSession кладет сессию в контекст.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

// SessionFromContext извлекает сессию из контекста.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(*Session)
	return s, ok && s != nil
}
