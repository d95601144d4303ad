package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "notifications"
	ExchangeKind = "topic"

	RoutingKeyEmail = "notification.email"

	// NotificationQueue receives every notification.* message.
	NotificationQueue   = "booking-service.notifications"
	NotificationBinding = "notification.*"

	publishTimeout = 5 * time.Second
)

// Broker shares one AMQP connection between publishing and consuming. The
// publish channel is opened up front; each Consume call opens its own.
type Broker struct {
	conn    *amqp.Connection
	publish *amqp.Channel
}

func Dial(url string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	go func() {
		if err, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1)); ok {
			log.Printf("[RabbitMQ] connection closed: %v", err)
		}
	}()

	return &Broker{conn: conn, publish: ch}, nil
}

// Publish sends payload as persistent JSON on the notifications exchange.
func (b *Broker) Publish(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = b.publish.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	// The body carries a one-time code, so only the routing key is logged.
	log.Printf("[RabbitMQ] published to %s/%s (%d bytes)", ExchangeName, routingKey, len(body))
	return nil
}

// Consume declares a durable queue bound to bindingKey and starts a
// manual-ack consumer with the given prefetch.
func (b *Broker) Consume(queue, bindingKey string, prefetch int) (<-chan amqp.Delivery, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq qos: %w", err)
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(q.Name, bindingKey, ExchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	log.Printf("[RabbitMQ] consuming from queue %s (%s)", q.Name, bindingKey)
	return msgs, nil
}

// Close tears down the connection, which also closes every consumer channel
// and ends their delivery streams.
func (b *Broker) Close() {
	if b.publish != nil {
		b.publish.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}
