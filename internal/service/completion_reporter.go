package service

import (
	"context"
	"sync"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	"go.uber.org/zap"
)

const reportTimeout = 30 * time.Second

// DirectCompletionReporter применяет событие в фоновой горутине без брокера.
type DirectCompletionReporter struct {
	recorder interfaces.CompletionRecorder
	notifier interfaces.ClientNotifier
	logger   *zap.Logger
	wg       sync.WaitGroup
}

var _ interfaces.CompletionReporter = (*DirectCompletionReporter)(nil)

func NewDirectCompletionReporter(recorder interfaces.CompletionRecorder, notifier interfaces.ClientNotifier, logger *zap.Logger) *DirectCompletionReporter {
	return &DirectCompletionReporter{recorder: recorder, notifier: notifier, logger: logger.Named("DirectCompletionReporter")}
}

// ReportCompletion не блокирует. Повтора нет: при ошибке пользователь сразу получает уведомление.
func (r *DirectCompletionReporter) ReportCompletion(ctx context.Context, event models.CompletionEvent) {
	ctx = context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, reportTimeout)
		defer cancel()
		if _, err := r.recorder.RecordCompletion(ctx, event); err != nil {
			r.logger.Warn("Completion was not recorded", zap.String("eventID", event.EventID), zap.Error(err))
			r.notifier.SendToUser(event.UserID, interfaces.ErrorNotification(interfaces.ProgressSaveFailedMessage))
		}
	}()
}

// Wait ждет завершения отправленных событий.
func (r *DirectCompletionReporter) Wait() {
	r.wg.Wait()
}

// QueuedCompletionReporter публикует событие в очередь; применяет его консьюмер.
type QueuedCompletionReporter struct {
	publisher interfaces.CompletionEventPublisher
	notifier  interfaces.ClientNotifier
	logger    *zap.Logger
	wg        sync.WaitGroup
}

var _ interfaces.CompletionReporter = (*QueuedCompletionReporter)(nil)

func NewQueuedCompletionReporter(publisher interfaces.CompletionEventPublisher, notifier interfaces.ClientNotifier, logger *zap.Logger) *QueuedCompletionReporter {
	return &QueuedCompletionReporter{publisher: publisher, notifier: notifier, logger: logger.Named("QueuedCompletionReporter")}
}

// ReportCompletion не блокирует. При ошибке публикации пользователь получает уведомление.
func (r *QueuedCompletionReporter) ReportCompletion(ctx context.Context, event models.CompletionEvent) {
	ctx = context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, reportTimeout)
		defer cancel()
		if err := r.publisher.PublishCompletion(ctx, event); err != nil {
			completionsTotal.WithLabelValues(string(event.Kind), "publish_failed").Inc()
			r.logger.Error("Failed to publish completion event",
				zap.String("eventID", event.EventID),
				zap.String("userID", event.UserID),
				zap.Error(err))
			r.notifier.SendToUser(event.UserID, interfaces.ErrorNotification(interfaces.ProgressSaveFailedMessage))
		}
	}()
}

// Wait ждет завершения публикаций.
func (r *QueuedCompletionReporter) Wait() {
	r.wg.Wait()
}
