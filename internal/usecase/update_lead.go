package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type UpdateLeadUseCase struct {
	Leads   LeadRepositoryInterface
	History HistoryRepositoryInterface
	Now     Clock
}

func NewUpdateLeadUseCase(leads LeadRepositoryInterface, history HistoryRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{
		Leads:   leads,
		History: history,
		Now:     time.Now,
	}
}

// Execute aplica um patch parcial nos campos de contato/comerciais e
// anexa uma entrada "edit" no ledger. Estágio e confirmação de
// pagamento ficam fora do alcance deste caso de uso.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, leadID string, input UpdateLeadInput, actor entity.Actor) (*entity.PipelineLead, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, ErrPersistence("falha ao carregar lead: " + err.Error())
	}
	if lead == nil {
		return nil, ErrNotFound("lead não encontrado")
	}

	before := *lead

	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Company != nil {
		lead.Company = *input.Company
	}
	if input.Segment != nil {
		lead.Segment = *input.Segment
	}
	if input.Temperature != nil {
		lead.Temperature = *input.Temperature
	}
	if input.LeadSource != nil {
		lead.LeadSource = *input.LeadSource
	}
	if input.PotentialValue != nil {
		lead.PotentialValue = *input.PotentialValue
	}
	if input.PaymentTerms != nil {
		lead.PaymentTerms = *input.PaymentTerms
	}

	lead.UpdatedAt = uc.Now()

	if err := lead.Validate(); err != nil {
		return nil, ErrValidation(err.Error())
	}

	// Entrada de edição não carrega estágio nenhum.
	entry := entity.NewHistoryEntry(lead.ID, entity.EntryEdit, actor, lead.UpdatedAt).
		WithNote("Dados do lead atualizados")

	txn := NewTransaction()

	txn.AddOperation("save_lead", func(ctx context.Context) error {
		return uc.Leads.Save(ctx, lead)
	})

	txn.AddCompensation("restore_lead", func(ctx context.Context) error {
		return uc.Leads.Save(ctx, &before)
	})

	txn.AddOperation("append_edit_entry", func(ctx context.Context) error {
		return uc.History.Append(ctx, entry)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, ErrPersistence("failed to persist lead edit: " + err.Error())
	}

	return lead, nil
}
