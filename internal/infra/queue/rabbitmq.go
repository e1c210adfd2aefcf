package queue

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName       = "crm.events"
	QueueName          = "q.tasks.follow_up"
	DLQName            = "q.tasks.follow_up.dlq"
	DLXName            = "crm.dlx" // Dead Letter Exchange
	RoutingKeyFollowUp = "task.follow_up_created"
)

// Channel is the subset of *amqp.Channel used by the topology, producer and worker.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Close() error
}

var _ Channel = (*amqp.Channel)(nil)

// RabbitMQ owns the connection. Ch is the publishing channel; consumers get
// their own channels from ConsumerChannel.
type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel

	openChannel func() (Channel, error)
	consumers   []Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := SetupTopology(ch); err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch, openChannel: func() (Channel, error) {
		c, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return c, nil
	}}, nil
}

// ConsumerChannel opens a channel apart from the publishing one, limited to
// prefetch unacked deliveries. Close releases it.
func (r *RabbitMQ) ConsumerChannel(prefetch int) (Channel, error) {
	ch, err := r.openChannel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consumer channel: %w", err)
	}
	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			ch.Close()
			return nil, fmt.Errorf("failed to set prefetch: %w", err)
		}
	}
	r.consumers = append(r.consumers, ch)
	return ch, nil
}

func (r *RabbitMQ) Healthy() bool {
	return r != nil && r.Conn != nil && !r.Conn.IsClosed()
}

func (r *RabbitMQ) Close() error {
	for _, ch := range r.consumers {
		ch.Close()
	}
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn == nil {
		return nil
	}
	return r.Conn.Close()
}

// SetupTopology declares the exchange, the follow-up queue and its dead letter pair.
func SetupTopology(ch Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DLXName, err)
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DLQName, err)
	}
	if err := ch.QueueBind(DLQName, RoutingKeyFollowUp, DLXName, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", DLQName, err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,            // nacked messages go to the DLX
		"x-dead-letter-routing-key": RoutingKeyFollowUp, // with this key
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", ExchangeName, err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", QueueName, err)
	}
	if err := ch.QueueBind(QueueName, RoutingKeyFollowUp, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", QueueName, err)
	}
	return nil
}
