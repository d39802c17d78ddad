package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const processTimeout = 30 * time.Second

// CompletionConsumer читает события завершения и передает их процессору.
type CompletionConsumer struct {
	conn        *amqp.Connection
	logger      *zap.Logger
	queueName   string
	processor   *CompletionProcessor
	stopChannel chan struct{}
	stopOnce    sync.Once
}

func NewCompletionConsumer(conn *amqp.Connection, queueName string, processor *CompletionProcessor, logger *zap.Logger) *CompletionConsumer {
	return &CompletionConsumer{
		conn:        conn,
		logger:      logger.Named("CompletionConsumer"),
		queueName:   queueName,
		processor:   processor,
		stopChannel: make(chan struct{}),
	}
}

// Start блокируется до вызова Stop или закрытия канала доставки.
func (c *CompletionConsumer) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	defer ch.Close()

	q, err := declareCompletionQueue(ch, c.queueName)
	if err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", c.queueName, err)
	}

	// По одному сообщению: события одного пользователя применяются по порядку
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"completion-consumer",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}
	c.logger.Info("Consumer started", zap.String("queue", q.Name))

	for {
		select {
		case <-c.stopChannel:
			c.logger.Info("Consumer stopping")
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("Delivery channel closed")
				return nil
			}
			c.processor.ProcessMessage(ctx, d)
		}
	}
}

// Stop останавливает Start. Повторные вызовы безопасны.
func (c *CompletionConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChannel) })
}

// CompletionProcessor декодирует сообщение и применяет событие.
type CompletionProcessor struct {
	recorder interfaces.CompletionRecorder
	notifier interfaces.ClientNotifier
	logger   *zap.Logger
}

func NewCompletionProcessor(recorder interfaces.CompletionRecorder, notifier interfaces.ClientNotifier, logger *zap.Logger) *CompletionProcessor {
	return &CompletionProcessor{recorder: recorder, notifier: notifier, logger: logger.Named("CompletionProcessor")}
}

// ProcessMessage подтверждает сообщение после успешной записи.
// Битые сообщения отклоняются без повтора, ошибки хранилища повторяются один раз.
// Пользователь получает уведомление только после неудачной повторной доставки.
func (p *CompletionProcessor) ProcessMessage(ctx context.Context, d amqp.Delivery) {
	log := p.logger.With(zap.Uint64("delivery_tag", d.DeliveryTag))

	var event models.CompletionEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		log.Error("Failed to decode completion event", zap.Error(err), zap.ByteString("body", d.Body))
		p.nack(log, d, false)
		return
	}
	if event.UserID == "" || event.ItemID == "" ||
		(event.Kind != models.CompletionGame && event.Kind != models.CompletionQuiz) {
		log.Error("Invalid completion event",
			zap.String("userID", event.UserID),
			zap.String("itemID", event.ItemID),
			zap.String("kind", string(event.Kind)))
		p.nack(log, d, false)
		return
	}

	processCtx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	added, err := p.recorder.RecordCompletion(processCtx, event)
	if err != nil {
		requeue := !d.Redelivered
		log.Error("Failed to record completion",
			zap.String("eventID", event.EventID),
			zap.Bool("requeue", requeue),
			zap.Error(err))
		p.nack(log, d, requeue)
		if !requeue {
			p.notifier.SendToUser(event.UserID, interfaces.ErrorNotification(interfaces.ProgressSaveFailedMessage))
		}
		return
	}

	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("Failed to ack message", zap.Error(ackErr))
		return
	}
	log.Info("Completion event processed",
		zap.String("eventID", event.EventID),
		zap.String("userID", event.UserID),
		zap.Bool("added", added))
}

func (p *CompletionProcessor) nack(log *zap.Logger, d amqp.Delivery, requeue bool) {
	if err := d.Nack(false, requeue); err != nil {
		log.Error("Failed to nack message", zap.Bool("requeue", requeue), zap.Error(err))
	}
}
