package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/pkg/logger"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Envelope is the JSON body of every published message.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func Encode(eventType string, payload any, occurredAt time.Time) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	})
}

// Publisher sends events to a topic exchange. The routing key is "<prefix>.<event type>".
type Publisher struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
	log        logger.Logger
}

func NewPublisher(cfg config.AMQPConfig, log logger.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:       conn,
		channel:    channel,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		log:        log,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	now := time.Now()
	body, err := Encode(eventType, payload, now)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	routingKey := RoutingKey(p.routingKey, eventType)
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    now,
			Type:         eventType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	p.log.Debug("events.publish: sent", "type", eventType, "exchange", p.exchange, "routing_key", routingKey)
	return nil
}

func RoutingKey(prefix, eventType string) string {
	if prefix == "" {
		return eventType
	}
	return prefix + "." + eventType
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
