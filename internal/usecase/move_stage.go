package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// MoveStageUseCase é o motor de transição de estágio. Valida papel e
// precondições, delega o commit atômico (lead + ledger) ao committer e
// publica o evento depois do commit.
type MoveStageUseCase struct {
	Leads     LeadRepositoryInterface
	Committer StageCommitterInterface
	Queue     EventProducerInterface
	Now       Clock
}

func NewMoveStageUseCase(
	leads LeadRepositoryInterface,
	committer StageCommitterInterface,
	producer EventProducerInterface,
) *MoveStageUseCase {
	return &MoveStageUseCase{
		Leads:     leads,
		Committer: committer,
		Queue:     producer,
		Now:       time.Now,
	}
}

// ProposeMove valida e, se o destino não for gateado, commita o
// movimento. Destino "application" devolve NeedsClosingData sem gravar
// nada: o caller volta com ConfirmClosingData. Destino "won" nunca é
// alcançável por aqui — só ConfirmPayment chega lá.
func (uc *MoveStageUseCase) ProposeMove(ctx context.Context, leadID, fromStage, toStage string, actor entity.Actor) (*MoveOutcome, error) {
	if !entity.IsValidStage(fromStage) || !entity.IsValidStage(toStage) {
		return nil, ErrValidation("estágio desconhecido")
	}
	if fromStage == toStage {
		return nil, ErrNoOpMove("origem e destino são o mesmo estágio")
	}
	if !CanDropInto(actor.Role, toStage) {
		return nil, ErrForbidden(fmt.Sprintf("papel %s não pode mover para %s", actor.Role, toStage))
	}
	if toStage == entity.StageWon {
		return nil, ErrInvalidState("ganho só é alcançável confirmando o pagamento")
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, ErrPersistence("falha ao carregar lead: " + err.Error())
	}
	if lead == nil {
		return nil, ErrNotFound("lead não encontrado")
	}
	if lead.CurrentStage != fromStage {
		return nil, ErrConflict(fmt.Sprintf("lead já está em %s, recarregue o board", lead.CurrentStage))
	}

	// Gate de aplicação: o movimento fica pendente até o caller mandar
	// os dados de fechamento. Nenhum efeito colateral aqui.
	if toStage == entity.StageApplication {
		return &MoveOutcome{Status: MoveNeedsClosingData, Lead: lead}, nil
	}

	now := uc.Now()
	lead.CurrentStage = toStage
	lead.StageUpdatedAt = now
	lead.UpdatedAt = now

	entry := entity.NewHistoryEntry(lead.ID, entity.EntryStageChange, actor, now).
		WithStages(&fromStage, &toStage)

	if err := uc.commit(ctx, lead, fromStage, entry); err != nil {
		return nil, err
	}

	uc.publish(queue.PipelineEventPayload{
		EventType:  queue.EventStageMoved,
		LeadID:     lead.ID,
		LeadName:   lead.Name,
		FromStage:  fromStage,
		ToStage:    toStage,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		OccurredAt: now,
	})

	return &MoveOutcome{Status: MoveCommitted, Lead: lead}, nil
}

// ConfirmClosingData fecha o gate de aplicação: grava os campos
// comerciais e move o lead para "application" num commit só.
func (uc *MoveStageUseCase) ConfirmClosingData(ctx context.Context, leadID string, input ClosingDataInput, actor entity.Actor) (*MoveOutcome, error) {
	if input.SaleValue <= 0 {
		return nil, ErrValidation("sale_value é obrigatório e deve ser maior que zero")
	}
	if input.NegotiationType == "" {
		return nil, ErrValidation("negotiation_type é obrigatório")
	}
	if !entity.IsValidNegotiationType(input.NegotiationType) {
		return nil, ErrValidation("negotiation_type desconhecido")
	}
	if input.PendingValue < 0 {
		return nil, ErrValidation("pending_value não pode ser negativo")
	}
	if !CanDropInto(actor.Role, entity.StageApplication) {
		return nil, ErrForbidden(fmt.Sprintf("papel %s não pode mover para %s", actor.Role, entity.StageApplication))
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, ErrPersistence("falha ao carregar lead: " + err.Error())
	}
	if lead == nil {
		return nil, ErrNotFound("lead não encontrado")
	}
	if lead.CurrentStage == entity.StageApplication || lead.CurrentStage == entity.StageWon {
		return nil, ErrInvalidState("fechamento já registrado para este lead")
	}

	fromStage := lead.CurrentStage
	toStage := entity.StageApplication
	now := uc.Now()

	lead.SaleValue = input.SaleValue
	lead.PendingValue = input.PendingValue
	lead.NegotiationType = input.NegotiationType
	lead.PaymentTerms = input.PaymentTerms
	lead.CurrentStage = toStage
	lead.StageUpdatedAt = now
	lead.UpdatedAt = now

	// Primeiro closer a registrar fechamento vira dono do fechamento.
	if lead.CloserOwnerID == "" && actor.Role == entity.RoleCloser {
		lead.CloserOwnerID = actor.ID
		lead.CloserOwnerName = actor.Name
	}

	entry := entity.NewHistoryEntry(lead.ID, entity.EntryStageChange, actor, now).
		WithStages(&fromStage, &toStage).
		WithNote(fmt.Sprintf("Fechamento registrado: %s, R$ %.2f", input.NegotiationType, input.SaleValue))

	if err := uc.commit(ctx, lead, fromStage, entry); err != nil {
		return nil, err
	}

	uc.publish(queue.PipelineEventPayload{
		EventType:  queue.EventStageMoved,
		LeadID:     lead.ID,
		LeadName:   lead.Name,
		FromStage:  fromStage,
		ToStage:    toStage,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		SaleValue:  lead.SaleValue,
		OccurredAt: now,
	})

	return &MoveOutcome{Status: MoveCommitted, Lead: lead}, nil
}

func (uc *MoveStageUseCase) commit(ctx context.Context, lead *entity.PipelineLead, fromStage string, entry *entity.HistoryEntry) error {
	err := uc.Committer.CommitMove(ctx, lead, fromStage, entry)
	if err == entity.ErrStageConflict {
		return ErrConflict("outro usuário moveu este lead, recarregue o board")
	}
	if err == entity.ErrLeadNotFound {
		return ErrNotFound("lead não encontrado")
	}
	if err != nil {
		return ErrPersistence("falha ao commitar movimento: " + err.Error())
	}
	return nil
}

// publish roda depois do commit e nunca derruba a operação: evento
// perdido vira log, não rollback.
func (uc *MoveStageUseCase) publish(payload queue.PipelineEventPayload) {
	if uc.Queue == nil {
		return
	}
	go func() {
		if err := uc.Queue.PublishPipelineEvent(context.Background(), payload); err != nil {
			log.Error().Err(err).Str("lead_id", payload.LeadID).Msg("falha ao publicar evento do pipeline")
		}
	}()
}
