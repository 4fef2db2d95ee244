package producer

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeOutboxRepository struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepository) WithTx(*gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(context.Context, kafka.OutboxEvent) error {
	return nil
}
func (f *fakeOutboxRepository) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}
func (f *fakeOutboxRepository) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxRepository) MarkFailed(_ context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	failOn   string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failOn {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	repo := &fakeOutboxRepository{pending: []kafka.OutboxEvent{
		{ID: "e-1", Topic: "t.attendance", EventType: "attendance.saved", AggregateType: "attendance", AggregateID: "a-1", PartitionKey: "user-1", Payload: []byte(`{}`)},
		{ID: "e-2", Topic: "t.attendance", EventType: "attendance.saved", AggregateType: "attendance", AggregateID: "a-2", PartitionKey: "user-2", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{failOn: "user-2"}

	sent, err := processPendingEvents(context.Background(), repo, writer, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"e-1"}, repo.sent)
	assert.Contains(t, repo.failed["e-2"], "broker unavailable")

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "user-1", string(msg.Key))
	assert.Equal(t, "t.attendance", msg.Topic)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "attendance.saved", string(msg.Headers[0].Value))
}
