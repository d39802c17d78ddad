package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/interfaces/mocks"
	"troubleshoot-titans/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAcknowledger запоминает, как было подтверждено сообщение.
type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

// fakeChannel - publishChannel, падающий первые failures раз.
type fakeChannel struct {
	failures  int
	calls     int
	published []amqp.Publishing
	keys      []string
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	c.calls++
	if c.calls <= c.failures {
		return errors.New("channel closed")
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func sampleEvent() models.CompletionEvent {
	return models.CompletionEvent{
		EventID:    "evt-1",
		UserID:     "user-1",
		Kind:       models.CompletionGame,
		ItemID:     "printer-offline",
		Points:     100,
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func delivery(t *testing.T, body []byte, redelivered bool) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()
	ack := &fakeAcknowledger{}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body, Redelivered: redelivered}, ack
}

func TestCompletionPublisher_PublishCompletion(t *testing.T) {
	t.Run("publishes persistent json", func(t *testing.T) {
		ch := &fakeChannel{}
		p := newCompletionPublisher(ch, "completion_events", zap.NewNop())

		require.NoError(t, p.PublishCompletion(context.Background(), sampleEvent()))
		require.Len(t, ch.published, 1)

		msg := ch.published[0]
		assert.Equal(t, "completion_events", ch.keys[0])
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, "evt-1", msg.MessageId)

		var decoded models.CompletionEvent
		require.NoError(t, json.Unmarshal(msg.Body, &decoded))
		assert.Equal(t, sampleEvent(), decoded)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		ch := &fakeChannel{failures: 2}
		p := newCompletionPublisher(ch, "q", zap.NewNop())
		p.retryDelay = time.Millisecond

		require.NoError(t, p.PublishCompletion(context.Background(), sampleEvent()))
		assert.Equal(t, 3, ch.calls)
	})

	t.Run("gives up after all attempts", func(t *testing.T) {
		ch := &fakeChannel{failures: 10}
		p := newCompletionPublisher(ch, "q", zap.NewNop())
		p.retryDelay = time.Millisecond

		err := p.PublishCompletion(context.Background(), sampleEvent())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.Equal(t, publishAttempts, ch.calls)
	})
}

func TestCompletionProcessor_ProcessMessage(t *testing.T) {
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	t.Run("acks after recording", func(t *testing.T) {
		recorder := mocks.NewCompletionRecorder(t)
		recorder.On("RecordCompletion", mock.Anything, sampleEvent()).Return(true, nil).Once()

		d, ack := delivery(t, body, false)
		NewCompletionProcessor(recorder, mocks.NewClientNotifier(t), zap.NewNop()).ProcessMessage(context.Background(), d)

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
	})

	t.Run("duplicate event is still acked", func(t *testing.T) {
		recorder := mocks.NewCompletionRecorder(t)
		recorder.On("RecordCompletion", mock.Anything, sampleEvent()).Return(false, nil).Once()

		d, ack := delivery(t, body, false)
		NewCompletionProcessor(recorder, mocks.NewClientNotifier(t), zap.NewNop()).ProcessMessage(context.Background(), d)

		assert.True(t, ack.acked)
	})

	t.Run("malformed json is dropped", func(t *testing.T) {
		recorder := mocks.NewCompletionRecorder(t)

		d, ack := delivery(t, []byte("{not json"), false)
		NewCompletionProcessor(recorder, mocks.NewClientNotifier(t), zap.NewNop()).ProcessMessage(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		recorder.AssertNotCalled(t, "RecordCompletion", mock.Anything, mock.Anything)
	})

	t.Run("unknown kind is dropped", func(t *testing.T) {
		recorder := mocks.NewCompletionRecorder(t)
		ev := sampleEvent()
		ev.Kind = "puzzle"
		raw, _ := json.Marshal(ev)

		d, ack := delivery(t, raw, false)
		NewCompletionProcessor(recorder, mocks.NewClientNotifier(t), zap.NewNop()).ProcessMessage(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("storage failure is requeued once", func(t *testing.T) {
		recorder := mocks.NewCompletionRecorder(t)
		recorder.On("RecordCompletion", mock.Anything, sampleEvent()).Return(false, errors.New("db down")).Twice()
		notifier := mocks.NewClientNotifier(t)
		processor := NewCompletionProcessor(recorder, notifier, zap.NewNop())

		// Первая доставка: повтор впереди, пользователя не беспокоим
		d, ack := delivery(t, body, false)
		processor.ProcessMessage(context.Background(), d)
		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
		notifier.AssertNotCalled(t, "SendToUser", mock.Anything, mock.Anything)

		// Повторная доставка окончательная: ровно одно уведомление
		notifier.On("SendToUser", sampleEvent().UserID, interfaces.ErrorNotification(interfaces.ProgressSaveFailedMessage)).Once()
		d, ack = delivery(t, body, true)
		processor.ProcessMessage(context.Background(), d)
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
		notifier.AssertNumberOfCalls(t, "SendToUser", 1)
	})
}
