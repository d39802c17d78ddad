package handler

import (
	"fmt"
	"net/http"
	"time"

	"troubleshoot-titans/internal/models"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// NewGenerateRateLimiter ограничивает генерацию контента по пользователю.
// Должен стоять после AuthMiddleware, иначе ключом будет IP.
func NewGenerateRateLimiter(store rateli.Store) gin.HandlerFunc {
	return rateli.RateLimiter(store, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			rateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:    models.ErrCodeTooManyRequests,
				Message: fmt.Sprintf("Too many generation requests. Try again in %s", time.Until(info.ResetTime).Round(time.Second)),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			if userID := c.GetString(userIDKey); userID != "" {
				return "generate:" + userID
			}
			return "generate-ip:" + c.ClientIP()
		},
	})
}
