package models

// ErrorResponse - стандартная структура ответа об ошибке.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Коды ошибок API
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeTokenInvalid     = "token_invalid"
	ErrCodeTokenExpired     = "token_expired"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeNoActiveGame     = "no_active_game"
	ErrCodeGenerationFailed = "generation_failed"
	ErrCodePromptTooLarge   = "prompt_too_large"
	ErrCodeTooManyRequests  = "too_many_requests"
	ErrCodeInternal         = "internal_error"
)

// PaginatedResponse - ответ со списком и курсором следующей страницы.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
