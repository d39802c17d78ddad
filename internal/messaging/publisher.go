package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	publishTimeout  = 10 * time.Second
	publishAttempts = 3
	appID           = "troubleshoot-titans"
)

// publishChannel - часть *amqp.Channel, нужная паблишеру.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// CompletionPublisher публикует события завершения в очередь RabbitMQ.
type CompletionPublisher struct {
	channel    publishChannel
	queueName  string
	logger     *zap.Logger
	retryDelay time.Duration
}

var _ interfaces.CompletionEventPublisher = (*CompletionPublisher)(nil)

// NewCompletionPublisher открывает канал и объявляет очередь.
// Канал закрывается вместе с соединением.
func NewCompletionPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (*CompletionPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("completion publisher: failed to open channel: %w", err)
	}
	if _, err := declareCompletionQueue(ch, queueName); err != nil {
		ch.Close()
		return nil, fmt.Errorf("completion publisher: failed to declare queue '%s': %w", queueName, err)
	}
	logger.Info("Completion queue declared", zap.String("queue", queueName))
	return newCompletionPublisher(ch, queueName, logger), nil
}

func newCompletionPublisher(ch publishChannel, queueName string, logger *zap.Logger) *CompletionPublisher {
	return &CompletionPublisher{
		channel:    ch,
		queueName:  queueName,
		logger:     logger.Named("CompletionPublisher"),
		retryDelay: 100 * time.Millisecond,
	}
}

// PublishCompletion сериализует событие в JSON и публикует persistent-сообщение.
func (p *CompletionPublisher) PublishCompletion(ctx context.Context, event models.CompletionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal completion event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	log := p.logger.With(zap.String("eventID", event.EventID), zap.String("userID", event.UserID))
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // default exchange
			p.queueName, // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    event.EventID,
				Timestamp:    time.Now(),
				AppId:        appID,
				Body:         body,
			},
		)
		if err == nil {
			log.Debug("Completion event published", zap.Int("attempt", attempt))
			return nil
		}
		log.Warn("Failed to publish completion event", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < publishAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("publish to %s cancelled: %w", p.queueName, ctx.Err())
			case <-time.After(time.Duration(attempt) * p.retryDelay):
			}
		}
	}
	return fmt.Errorf("failed to publish to %s after %d attempts: %w", p.queueName, publishAttempts, err)
}
