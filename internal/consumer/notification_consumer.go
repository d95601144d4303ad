package consumer

import (
	"encoding/json"
	"log"

	"github.com/pavelchamgl/booking/internal/dto"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Sender interface {
	Send(to, subject, body string) error
}

// NotificationConsumer delivers queued email notifications. Delivery is
// best effort: failed messages are dropped, never requeued.
type NotificationConsumer struct {
	sender Sender
}

func NewNotificationConsumer(sender Sender) *NotificationConsumer {
	return &NotificationConsumer{sender: sender}
}

// Start drains msgs in the background until the channel is closed. The
// returned channel is closed once draining stops.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
	return done
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var email dto.EmailMessage
	if err := json.Unmarshal(msg.Body, &email); err != nil || email.To == "" {
		log.Printf("[NotificationConsumer] dropping malformed message (key=%s): %v", msg.RoutingKey, err)
		_ = msg.Nack(false, false)
		return
	}

	if err := nc.sender.Send(email.To, email.Subject, email.Body); err != nil {
		log.Printf("[NotificationConsumer] failed to send %q: %v", email.Subject, err)
		_ = msg.Nack(false, false)
		return
	}

	log.Printf("[NotificationConsumer] sent %q", email.Subject)
	_ = msg.Ack(false)
}
