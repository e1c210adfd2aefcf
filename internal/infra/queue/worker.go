package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

// TaskNotifier delivers the follow-up notice to the assignee.
type TaskNotifier interface {
	SendTaskAssigned(ctx context.Context, p FollowUpTaskPayload) error
}

var errUnknownEvent = errors.New("unknown event type")

type Worker struct {
	Channel  Channel
	Notifier TaskNotifier
	Log      logger.Logger
}

func NewWorker(ch Channel, notifier TaskNotifier, log logger.Logger) *Worker {
	return &Worker{Channel: ch, Notifier: notifier, Log: log}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"crm-follow-up-worker",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register RabbitMQ consumer: %w", err)
	}

	w.Log.Info("worker waiting for messages", map[string]interface{}{"queue": queueName})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	fields := map[string]interface{}{"message_id": d.MessageId, "type": d.Type}

	if err := w.process(ctx, d); err != nil {
		fields["error"] = err
		w.Log.Error("message dead-lettered", fields)
		// No requeue: the message goes to the DLQ.
		_ = d.Nack(false, false)
		return
	}

	w.Log.Info("message processed", fields)
	_ = d.Ack(false)
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) error {
	switch d.Type {
	case RoutingKeyFollowUp, "":
	default:
		return fmt.Errorf("%w: %s", errUnknownEvent, d.Type)
	}

	var payload FollowUpTaskPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if payload.TaskID == "" || payload.AssigneeEmail == "" {
		return errors.New("payload missing task id or assignee email")
	}
	return w.Notifier.SendTaskAssigned(ctx, payload)
}
