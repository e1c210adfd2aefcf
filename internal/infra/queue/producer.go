package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpTaskPayload is published once a follow-up task has been committed.
type FollowUpTaskPayload struct {
	TaskID        string     `json:"taskId"`
	Title         string     `json:"title"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	LeadID        string     `json:"leadId"`
	LeadName      string     `json:"leadName"`
	InteractionID string     `json:"interactionId"`
	AssigneeID    string     `json:"assigneeId"`
	AssigneeName  string     `json:"assigneeName"`
	AssigneeEmail string     `json:"assigneeEmail"`
}

type RabbitMQProducer struct {
	Ch Channel
}

func NewProducer(ch Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishFollowUpTask(ctx context.Context, payload FollowUpTaskPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKeyFollowUp,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         RoutingKeyFollowUp,
			MessageId:    payload.TaskID,
			Timestamp:    time.Now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
