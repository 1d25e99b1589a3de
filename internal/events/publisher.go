// internal/events/publisher.go
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"

	"github.com/openchurch/campaign-service/internal/model"
)

// QueueName is the durable queue carrying campaign lifecycle events.
const QueueName = "campaign_events"

// Publisher emits campaign lifecycle events for downstream consumers
// (the audit worker, integrations). Publishing is best-effort: a broker
// failure is logged and never fails the triggering operation.
type Publisher interface {
	Publish(eventType string, campaignID int, payload any)
	Close() error
}

// AMQPPublisher publishes to RabbitMQ.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(eventType string, campaignID int, payload any) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Println("⚠️ failed to marshal event payload:", err)
			return
		}
		raw = data
	}

	event := model.CampaignEvent{
		Type:       eventType,
		CampaignID: campaignID,
		Payload:    raw,
		OccurredAt: time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Println("⚠️ failed to marshal event:", err)
		return
	}

	err = p.ch.Publish(
		"",        // exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Println("⚠️ failed to publish event:", err)
	}
}

func (p *AMQPPublisher) Close() error {
	p.ch.Close()
	return p.conn.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(eventType string, campaignID int, payload any) {}
func (NoopPublisher) Close() error                                          { return nil }

var (
	_ Publisher = (*AMQPPublisher)(nil)
	_ Publisher = NoopPublisher{}
)
