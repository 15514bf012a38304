package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type CreateLeadUseCase struct {
	Leads   LeadRepositoryInterface
	History HistoryRepositoryInterface
	Queue   EventProducerInterface
	Now     Clock
}

func NewCreateLeadUseCase(
	leads LeadRepositoryInterface,
	history HistoryRepositoryInterface,
	producer EventProducerInterface,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Leads:   leads,
		History: history,
		Queue:   producer,
		Now:     time.Now,
	}
}

// Execute cria o lead no estágio inicial com o ator como dono e anexa a
// entrada de criação no ledger. Lead sem entrada de criação não pode
// existir: se o append falhar, o lead é desfeito por compensação.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput, actor entity.Actor) (*entity.PipelineLead, error) {
	now := uc.Now()

	lead, err := entity.NewPipelineLead(input.Name, input.Phone, actor, now)
	if err != nil {
		return nil, ErrValidation(err.Error())
	}

	lead.Email = input.Email
	lead.Company = input.Company
	lead.Segment = input.Segment
	lead.LeadSource = input.LeadSource
	lead.PotentialValue = input.PotentialValue
	if input.Temperature != "" {
		lead.Temperature = input.Temperature
	}

	if err := lead.Validate(); err != nil {
		return nil, ErrValidation(err.Error())
	}

	stage := lead.CurrentStage
	entry := entity.NewHistoryEntry(lead.ID, entity.EntryCreation, actor, now).
		WithStages(nil, &stage).
		WithNote("Lead criado no funil")

	txn := NewTransaction()

	txn.AddOperation("create_lead", func(ctx context.Context) error {
		return uc.Leads.Create(ctx, lead)
	})

	txn.AddCompensation("delete_lead", func(ctx context.Context) error {
		return uc.Leads.Delete(ctx, lead.ID)
	})

	txn.AddOperation("append_creation_entry", func(ctx context.Context) error {
		return uc.History.Append(ctx, entry)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, ErrPersistence("failed to persist lead and history: " + err.Error())
	}

	if uc.Queue != nil {
		payload := queue.PipelineEventPayload{
			EventType:  queue.EventLeadCreated,
			LeadID:     lead.ID,
			LeadName:   lead.Name,
			ToStage:    stage,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			OccurredAt: now,
		}
		go func() {
			if err := uc.Queue.PublishPipelineEvent(context.Background(), payload); err != nil {
				log.Error().Err(err).Str("lead_id", lead.ID).Msg("falha ao publicar evento de criação")
			}
		}()
	}

	return lead, nil
}
