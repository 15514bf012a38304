package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type AddNoteUseCase struct {
	History HistoryRepositoryInterface
	Now     Clock
}

func NewAddNoteUseCase(history HistoryRepositoryInterface) *AddNoteUseCase {
	return &AddNoteUseCase{
		History: history,
		Now:     time.Now,
	}
}

// Execute anexa uma nota livre no ledger do lead. Puro append: não
// mexe em estágio nem em nenhum campo do lead.
func (uc *AddNoteUseCase) Execute(ctx context.Context, leadID, text string, actor entity.Actor) (*entity.HistoryEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrValidation("nota não pode ser vazia")
	}

	entry := entity.NewHistoryEntry(leadID, entity.EntryNote, actor, uc.Now()).
		WithNote(text)

	if err := uc.History.Append(ctx, entry); err != nil {
		if err == entity.ErrLeadNotFound {
			return nil, ErrNotFound("lead não encontrado")
		}
		return nil, ErrPersistence("falha ao anexar nota: " + err.Error())
	}

	return entry, nil
}
