package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// Clock é a fonte de tempo injetada nos casos de uso (time.Now em
// produção, fixa nos testes).
type Clock func() time.Time

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.PipelineLead) error

	// Save grava os campos mutáveis do lead. Nunca é usado para mudar
	// de estágio: isso passa pelo StageCommitter.
	Save(ctx context.Context, lead *entity.PipelineLead) error

	// Delete existe só como compensação do Create; o núcleo não expõe
	// remoção de lead.
	Delete(ctx context.Context, id string) error

	// FindByID devolve (nil, nil) quando o id não existe.
	FindByID(ctx context.Context, id string) (*entity.PipelineLead, error)

	ListAll(ctx context.Context) ([]*entity.PipelineLead, error)
}

type HistoryRepositoryInterface interface {
	// Append devolve entity.ErrLeadNotFound se o lead referenciado
	// não existir. Não há update nem delete: o ledger é imutável.
	Append(ctx context.Context, entry *entity.HistoryEntry) error

	// ListForLead devolve as entradas da mais recente para a mais
	// antiga, como snapshot consistente do momento da chamada.
	ListForLead(ctx context.Context, leadID string) ([]*entity.HistoryEntry, error)
}

// StageCommitterInterface fecha a unidade atômica do motor: gravação do
// lead e append no ledger na mesma transação. A implementação usa a
// precondição de estágio (WHERE current_stage = fromStage) e devolve
// entity.ErrStageConflict quando outro ator venceu a corrida.
type StageCommitterInterface interface {
	CommitMove(ctx context.Context, lead *entity.PipelineLead, fromStage string, entry *entity.HistoryEntry) error
}

type EventProducerInterface interface {
	PublishPipelineEvent(ctx context.Context, payload queue.PipelineEventPayload) error
}
