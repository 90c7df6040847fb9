package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PaidHandler settles an approved document after the payroll system reports
// a completed payment run for it.
type PaidHandler interface {
	SettlePaid(ctx context.Context, processedBy, targetID, reference string) error
}

// Consumer defines the interface for event consumption
type Consumer interface {
	Start() error
	Close() error
}

// PayrollConsumer listens on the payroll result queue and marks the
// referenced claim or overtime request as paid.
type PayrollConsumer struct {
	client   *RabbitMQClient
	claims   PaidHandler
	overtime PaidHandler
	shutdown chan struct{}
	wg       sync.WaitGroup
	enabled  bool
}

func NewPayrollConsumer(client *RabbitMQClient, claims, overtime PaidHandler) *PayrollConsumer {
	return &PayrollConsumer{
		client:   client,
		claims:   claims,
		overtime: overtime,
		shutdown: make(chan struct{}),
		enabled:  client != nil,
	}
}

func (c *PayrollConsumer) Start() error {
	if !c.enabled {
		log.Println("Payroll consumer is disabled, not starting")
		return nil
	}

	msgs, err := c.client.Consume(PayrollQueue)
	if err != nil {
		return fmt.Errorf("failed to register payroll consumer: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consume(msgs)
	}()

	log.Printf("Payroll consumer started on queue %s", PayrollQueue)
	return nil
}

func (c *PayrollConsumer) consume(msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-c.shutdown:
			log.Println("Stopping payroll consumer")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("Payroll message channel closed")
				return
			}

			err := c.processMessage(msg.Body)
			if err != nil {
				log.Printf("FAILED to process payroll message - RoutingKey: %s, Error: %v",
					msg.RoutingKey, err)
				log.Printf("Failed message body: %s", string(msg.Body))

				// Acknowledge failed message to prevent infinite requeuing
				if ackErr := msg.Ack(false); ackErr != nil {
					log.Printf("Error acknowledging failed payroll message: %v", ackErr)
				}
			} else {
				if err := msg.Ack(false); err != nil {
					log.Printf("Error acknowledging payroll message: %v", err)
				}
			}
		}
	}
}

func (c *PayrollConsumer) processMessage(body []byte) error {
	var notice PaidNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		return fmt.Errorf("failed to unmarshal paid notice: %w", err)
	}

	log.Printf("Paid notice received: kind=%s id=%s reference=%s",
		notice.TargetKind, notice.TargetID, notice.Reference)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch notice.TargetKind {
	case "claim":
		return c.claims.SettlePaid(ctx, notice.ProcessedBy, notice.TargetID, notice.Reference)
	case "overtime":
		return c.overtime.SettlePaid(ctx, notice.ProcessedBy, notice.TargetID, notice.Reference)
	default:
		log.Printf("Unknown paid notice target kind: %s", notice.TargetKind)
		return nil
	}
}

func (c *PayrollConsumer) Close() error {
	if !c.enabled {
		return nil
	}

	close(c.shutdown)
	c.wg.Wait()
	return nil
}
