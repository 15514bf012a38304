package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// Worker consome os eventos do pipeline e alimenta as métricas do
// dashboard (feed de atividade). Não toca no banco: o estado já foi
// commitado antes do evento existir.
type Worker struct {
	Channel *amqp.Channel
}

func NewWorker(ch *amqp.Channel) *Worker {
	return &Worker{Channel: ch}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao registrar consumidor RabbitMQ")
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload PipelineEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Error().Err(err).Msg("[WORKER] JSON inválido, mandando pra DLQ")
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			switch payload.EventType {
			case EventLeadCreated:
				middleware.RecordLeadCreated()
			case EventStageMoved:
				middleware.RecordStageMove(payload.FromStage, payload.ToStage)
			case EventPaymentConfirmed:
				middleware.RecordPaymentConfirmation()
			default:
				log.Warn().Str("event_type", payload.EventType).Msg("[WORKER] evento desconhecido, mandando pra DLQ")
				d.Nack(false, false)
				continue
			}

			log.Info().
				Str("event_type", payload.EventType).
				Str("lead_id", payload.LeadID).
				Str("actor", payload.ActorName).
				Msg("[WORKER] evento do pipeline processado")

			d.Ack(false)
		}
	}()

	log.Info().Str("queue", queueName).Msg("[WORKER] aguardando eventos do pipeline")
	<-forever
}
