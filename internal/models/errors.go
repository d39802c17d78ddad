package models

import "errors"

// Общие ошибки приложения
var (
	// Ресурсы / БД
	ErrNotFound         = errors.New("resource not found")
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrProfileNotFound  = errors.New("profile not found")

	// Аутентификация
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Генерация контента
	ErrGenerationFailed = errors.New("content generation failed")
	ErrPromptTooLarge   = errors.New("prompt exceeds token budget")

	// Игры
	ErrNoActiveGame        = errors.New("no active game for user")
	ErrNoActiveMinigame    = errors.New("no active minigame for user")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")

	// Запросы
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
