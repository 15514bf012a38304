package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Tipos de evento publicados pelo motor do pipeline.
const (
	EventLeadCreated      = "lead-created"
	EventStageMoved       = "stage-moved"
	EventPaymentConfirmed = "payment-confirmed"
)

// PipelineEventPayload é a mensagem publicada depois de cada operação
// commitada do motor. O commit no banco nunca depende da publicação.
type PipelineEventPayload struct {
	EventType string `json:"event_type"`

	LeadID   string `json:"lead_id"`
	LeadName string `json:"lead_name"`

	FromStage string `json:"from_stage,omitempty"`
	ToStage   string `json:"to_stage,omitempty"`

	ActorID   string `json:"actor_id"`
	ActorName string `json:"actor_name"`

	SaleValue  float64   `json:"sale_value,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventProducerInterface interface {
	PublishPipelineEvent(ctx context.Context, payload PipelineEventPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishPipelineEvent(ctx context.Context, payload PipelineEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
