package authutils

import (
	"context"

	"troubleshoot-titans/internal/models"
)

const (
	ProviderJWT      = "jwt"
	ProviderFirebase = "firebase"
)

// TokenVerifier проверяет bearer-токен и возвращает сессию пользователя.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.Session, error)
}

// tokenSnippet возвращает безопасную для логгирования часть токена.
func tokenSnippet(tokenString string) string {
	limit := 15
	if len(tokenString) > limit {
		return tokenString[:limit] + "..."
	}
	return tokenString
}
