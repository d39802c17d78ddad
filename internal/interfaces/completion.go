package interfaces

import (
	"context"

	"troubleshoot-titans/internal/models"
)

// CompletionReporter сообщает о завершении игры или квиза. Не блокирует вызывающего.
//
//go:generate mockery --name CompletionReporter --output ./mocks --outpkg mocks --case=underscore
type CompletionReporter interface {
	ReportCompletion(ctx context.Context, event models.CompletionEvent)
}

// CompletionEventPublisher публикует событие завершения в брокер.
type CompletionEventPublisher interface {
	PublishCompletion(ctx context.Context, event models.CompletionEvent) error
}

// CompletionRecorder применяет событие завершения к профилю и рейтингу.
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, event models.CompletionEvent) (added bool, err error)
}
