package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// ConfirmPaymentUseCase fecha o funil: aplicação -> ganho, com a
// confirmação de pagamento gravada junto. É o único caminho para o
// estágio "won".
type ConfirmPaymentUseCase struct {
	Leads     LeadRepositoryInterface
	Committer StageCommitterInterface
	Queue     EventProducerInterface
	Now       Clock
}

func NewConfirmPaymentUseCase(
	leads LeadRepositoryInterface,
	committer StageCommitterInterface,
	producer EventProducerInterface,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		Leads:     leads,
		Committer: committer,
		Queue:     producer,
		Now:       time.Now,
	}
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, leadID string, actor entity.Actor) (*MoveOutcome, error) {
	if !CanDropInto(actor.Role, entity.StageWon) {
		return nil, ErrForbidden(fmt.Sprintf("papel %s não pode confirmar pagamento", actor.Role))
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, ErrPersistence("falha ao carregar lead: " + err.Error())
	}
	if lead == nil {
		return nil, ErrNotFound("lead não encontrado")
	}

	// Precondição do gate: só confirma a partir de "application" e uma
	// única vez. Chamada repetida falha sem nenhum efeito colateral.
	if lead.CurrentStage != entity.StageApplication {
		return nil, ErrInvalidState("pagamento só pode ser confirmado a partir da aplicação")
	}
	if lead.PaymentConfirmed {
		return nil, ErrInvalidState("pagamento já confirmado para este lead")
	}

	fromStage := entity.StageApplication
	toStage := entity.StageWon
	now := uc.Now()

	lead.PaymentConfirmed = true
	lead.PaymentConfirmedAt = &now
	lead.CurrentStage = toStage
	lead.StageUpdatedAt = now
	lead.UpdatedAt = now

	entry := entity.NewHistoryEntry(lead.ID, entity.EntryPaymentConfirmed, actor, now).
		WithStages(&fromStage, &toStage).
		WithNote(fmt.Sprintf("Pagamento confirmado: R$ %.2f", lead.SaleValue))

	err = uc.Committer.CommitMove(ctx, lead, fromStage, entry)
	if err == entity.ErrStageConflict {
		return nil, ErrConflict("outro usuário moveu este lead, recarregue o board")
	}
	if err == entity.ErrLeadNotFound {
		return nil, ErrNotFound("lead não encontrado")
	}
	if err != nil {
		return nil, ErrPersistence("falha ao commitar confirmação: " + err.Error())
	}

	if uc.Queue != nil {
		payload := queue.PipelineEventPayload{
			EventType:  queue.EventPaymentConfirmed,
			LeadID:     lead.ID,
			LeadName:   lead.Name,
			FromStage:  fromStage,
			ToStage:    toStage,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			SaleValue:  lead.SaleValue,
			OccurredAt: now,
		}
		go uc.Queue.PublishPipelineEvent(context.Background(), payload)
	}

	return &MoveOutcome{Status: MoveCommitted, Lead: lead}, nil
}
