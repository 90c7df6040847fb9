package events

import (
	"context"
	"log"
)

// Publisher emits one audit event per committed lifecycle transition.
type Publisher interface {
	PublishAudit(ctx context.Context, eventType EventType, actorID, action, targetKind, targetID, detail string) error

	// Close closes the publisher and releases resources.
	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

func NewEventPublisher(rabbitURI string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			rabbitMQ: nil,
			enabled:  false,
		}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI)
	if err != nil {
		return nil, err
	}

	if err := client.setupExchangesAndQueues(); err != nil {
		client.Close()
		return nil, err
	}

	return &EventPublisher{
		rabbitMQ: client,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishAudit(ctx context.Context, eventType EventType, actorID, action, targetKind, targetID, detail string) error {
	if !p.enabled {
		log.Printf("Event publishing is disabled, skipping %s", eventType)
		return nil
	}

	event := NewAuditEvent(eventType, actorID, action, targetKind, targetID, detail)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent(ClaimsExchange, string(eventType), eventData); err != nil {
		return err
	}

	log.Printf("Published %s event for %s %s by actor %s", eventType, targetKind, targetID, actorID)
	return nil
}

func (p *EventPublisher) Client() *RabbitMQClient {
	return p.rabbitMQ
}

func (p *EventPublisher) Close() error {
	if p.rabbitMQ != nil {
		return p.rabbitMQ.Close()
	}
	return nil
}
