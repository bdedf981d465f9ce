// Package service provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/queue"
)

// Publisher emits activity events after a write commits.
type Publisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.ActivityEvent) error { return nil }

// AMQPPublisher publishes events to a durable queue on the default exchange.
// Each publish dials its own connection: writes are rare and this keeps the
// publisher free of reconnect state.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   *zap.Logger
}

// NewPublisher returns an AMQPPublisher for url, or a NopPublisher when url
// is empty.
func NewPublisher(url, queueName string, log *zap.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{URL: url, Queue: queueName, Log: log}
}

// Publish sends ev as a persistent JSON message.  It never panics; any error
// is logged and returned so the caller can choose to ignore it.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.ActivityEvent) error {
	log := p.Log.With(zap.String("event_id", ev.ID), zap.String("entity", ev.Entity), zap.String("action", ev.Action))

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Entity + "." + ev.Action,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
