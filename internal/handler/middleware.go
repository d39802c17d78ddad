package handler

import (
	"strings"

	"troubleshoot-titans/internal/authutils"
	"troubleshoot-titans/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionKey = "session"
	userIDKey  = "user_id"
)

// AuthMiddleware проверяет Bearer токен и кладет сессию в gin и request контексты.
func AuthMiddleware(verifier authutils.TokenVerifier, provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			tokenVerificationsTotal.WithLabelValues(provider, "failure").Inc()
			handleServiceError(c, models.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			zap.L().Warn("Invalid Authorization header format")
			tokenVerificationsTotal.WithLabelValues(provider, "failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		session, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			zap.L().Warn("Token verification failed", zap.String("provider", provider), zap.Error(err))
			tokenVerificationsTotal.WithLabelValues(provider, "failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues(provider, "success").Inc()
		c.Set(sessionKey, session)
		c.Set(userIDKey, session.UserID)
		c.Request = c.Request.WithContext(models.WithSession(c.Request.Context(), session))
		c.Next()
	}
}

// sessionFromContext достает сессию, выставленную AuthMiddleware.
func sessionFromContext(c *gin.Context) (*models.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		handleServiceError(c, models.ErrUnauthorized)
		return nil, false
	}
	session, ok := v.(*models.Session)
	if !ok || session == nil {
		zap.L().Error("Session in context has unexpected type")
		handleServiceError(c, models.ErrUnauthorized)
		return nil, false
	}
	return session, true
}
