package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// handleServiceError переводит ошибку сервиса в HTTP статус и ErrorResponse.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	var validationErr *scenario.ValidationError
	var bindErrs validator.ValidationErrors

	switch {
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or malformed"}
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeUnauthorized, Message: "Authentication required"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "Access denied"}
	case errors.Is(err, models.ErrNoActiveGame), errors.Is(err, models.ErrNoActiveMinigame):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNoActiveGame, Message: err.Error()}
	case errors.Is(err, models.ErrScenarioNotFound),
		errors.Is(err, models.ErrQuizNotFound),
		errors.Is(err, models.ErrPostNotFound),
		errors.Is(err, models.ErrProfileNotFound),
		errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, models.ErrPromptTooLarge):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodePromptTooLarge, Message: "Request is too large to generate content from"}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.ErrCodeGenerationFailed, Message: "Content generation failed, try again later"}
	case errors.As(err, &validationErr), errors.As(err, &bindErrs):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrAnswerCountMismatch):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusGatewayTimeout
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "Request timed out"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

// bindJSON декодирует тело запроса, ошибку отдает клиенту сама.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var bindErrs validator.ValidationErrors
		if errors.As(err, &bindErrs) {
			handleServiceError(c, bindErrs)
			return false
		}
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return false
	}
	return true
}
