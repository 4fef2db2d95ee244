// Package kafkatest provides an in-memory outbox for service tests.
package kafkatest

import (
	"context"
	"encoding/json"
	"sync"

	"go-payroll/internal/messaging/kafka"

	"gorm.io/gorm"
)

type Outbox struct {
	mu     sync.Mutex
	Events []kafka.OutboxEvent
	Err    error
}

func (o *Outbox) WithTx(*gorm.DB) kafka.OutboxRepository { return o }

func (o *Outbox) Create(_ context.Context, event kafka.OutboxEvent) error {
	if o.Err != nil {
		return o.Err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
	return nil
}

func (o *Outbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]kafka.OutboxEvent(nil), o.Events...), nil
}

func (o *Outbox) MarkSent(context.Context, string) error           { return nil }
func (o *Outbox) MarkFailed(context.Context, string, string) error { return nil }

// Topics returns the topic of every recorded event in order.
func (o *Outbox) Topics() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.Events))
	for _, e := range o.Events {
		out = append(out, e.Topic)
	}
	return out
}

// Decode unmarshals the payload of the i-th event into v.
func (o *Outbox) Decode(i int, v any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return json.Unmarshal(o.Events[i].Payload, v)
}
