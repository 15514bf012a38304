package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// memStore é um armazenamento em memória com a mesma semântica dos
// repositórios de verdade: CommitMove checa a precondição de estágio e
// grava lead + entrada do ledger como unidade.
type memStore struct {
	leads   map[string]entity.PipelineLead
	history map[string][]*entity.HistoryEntry
}

func newMemStore() *memStore {
	return &memStore{
		leads:   map[string]entity.PipelineLead{},
		history: map[string][]*entity.HistoryEntry{},
	}
}

func (s *memStore) Create(ctx context.Context, lead *entity.PipelineLead) error {
	s.leads[lead.ID] = *lead
	return nil
}

func (s *memStore) Save(ctx context.Context, lead *entity.PipelineLead) error {
	if _, ok := s.leads[lead.ID]; !ok {
		return entity.ErrLeadNotFound
	}
	s.leads[lead.ID] = *lead
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	delete(s.leads, id)
	return nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (*entity.PipelineLead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return nil, nil
	}
	c := lead
	return &c, nil
}

func (s *memStore) ListAll(ctx context.Context) ([]*entity.PipelineLead, error) {
	var out []*entity.PipelineLead
	for id := range s.leads {
		lead := s.leads[id]
		out = append(out, &lead)
	}
	return out, nil
}

func (s *memStore) CommitMove(ctx context.Context, lead *entity.PipelineLead, fromStage string, entry *entity.HistoryEntry) error {
	stored, ok := s.leads[lead.ID]
	if !ok {
		return entity.ErrLeadNotFound
	}
	if stored.CurrentStage != fromStage {
		return entity.ErrStageConflict
	}
	s.leads[lead.ID] = *lead
	return s.Append(ctx, entry)
}

func (s *memStore) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	if _, ok := s.leads[entry.LeadID]; !ok {
		return entity.ErrLeadNotFound
	}
	// newest-first, como o repositório de verdade lê do banco
	s.history[entry.LeadID] = append([]*entity.HistoryEntry{entry}, s.history[entry.LeadID]...)
	return nil
}

func (s *memStore) ListForLead(ctx context.Context, leadID string) ([]*entity.HistoryEntry, error) {
	return s.history[leadID], nil
}

// lastStageEntry acha a entrada mais recente que carrega estágio novo.
func lastStageEntry(entries []*entity.HistoryEntry) *entity.HistoryEntry {
	for _, e := range entries {
		if e.NewStage != nil {
			return e
		}
	}
	return nil
}

// TestEngineFullFlowKeepsLedgerConsistent percorre o funil inteiro:
// criação, movimento comum, gate de fechamento e confirmação de
// pagamento, checando a cada passo que a última entrada com estágio do
// ledger bate com o estágio atual do lead.
func TestEngineFullFlowKeepsLedgerConsistent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	createUC := usecase.NewCreateLeadUseCase(store, store, nil)
	moveUC := usecase.NewMoveStageUseCase(store, store, nil)
	paymentUC := usecase.NewConfirmPaymentUseCase(store, store, nil)
	noteUC := usecase.NewAddNoteUseCase(store)

	// 1. Criação
	lead, err := createUC.Execute(ctx, usecase.CreateLeadInput{
		Name:           "João Silva",
		Phone:          "(11) 99999-9999",
		PotentialValue: 3000,
	}, sdrActor)
	require.NoError(t, err)

	entries, _ := store.ListForLead(ctx, lead.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.EntryCreation, entries[0].Type)
	assert.Nil(t, entries[0].PreviousStage)

	// 2. Movimento comum (cenário: primeiro contato -> qualificação)
	outcome, err := moveUC.ProposeMove(ctx, lead.ID, entity.StageFirstContact, entity.StageQualifying, sdrActor)
	require.NoError(t, err)
	require.Equal(t, usecase.MoveCommitted, outcome.Status)

	entries, _ = store.ListForLead(ctx, lead.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.EntryStageChange, entries[0].Type)
	assert.Equal(t, entity.StageFirstContact, *entries[0].PreviousStage)
	assert.Equal(t, entity.StageQualifying, *entries[0].NewStage)

	// 3. Caminho até a proposta e o gate de aplicação
	_, err = moveUC.ProposeMove(ctx, lead.ID, entity.StageQualifying, entity.StageProposalSent, sdrActor)
	require.NoError(t, err)

	outcome, err = moveUC.ProposeMove(ctx, lead.ID, entity.StageProposalSent, entity.StageApplication, closerActor)
	require.NoError(t, err)
	assert.Equal(t, usecase.MoveNeedsClosingData, outcome.Status)

	// Gate pendente não mexe em nada
	stored, _ := store.FindByID(ctx, lead.ID)
	assert.Equal(t, entity.StageProposalSent, stored.CurrentStage)
	entries, _ = store.ListForLead(ctx, lead.ID)
	assert.Len(t, entries, 3)

	// 4. Fechamento commita aplicação + campos comerciais
	outcome, err = moveUC.ConfirmClosingData(ctx, lead.ID, usecase.ClosingDataInput{
		SaleValue:       2997,
		NegotiationType: entity.NegotiationPixUpfront,
	}, closerActor)
	require.NoError(t, err)
	require.Equal(t, usecase.MoveCommitted, outcome.Status)

	stored, _ = store.FindByID(ctx, lead.ID)
	assert.Equal(t, entity.StageApplication, stored.CurrentStage)
	assert.Equal(t, 2997.0, stored.SaleValue)

	// 5. Nota não carrega estágio e não quebra o invariante
	_, err = noteUC.Execute(ctx, lead.ID, "Aguardando comprovante do pix", closerActor)
	require.NoError(t, err)

	// 6. Confirmação de pagamento fecha o funil
	outcome, err = paymentUC.Execute(ctx, lead.ID, closerActor)
	require.NoError(t, err)
	require.Equal(t, usecase.MoveCommitted, outcome.Status)

	stored, _ = store.FindByID(ctx, lead.ID)
	assert.Equal(t, entity.StageWon, stored.CurrentStage)
	assert.True(t, stored.PaymentConfirmed)

	// 7. Segunda confirmação: falha sem criar entrada nova
	entries, _ = store.ListForLead(ctx, lead.ID)
	before := len(entries)

	_, err = paymentUC.Execute(ctx, lead.ID, closerActor)
	assert.Equal(t, usecase.CodeInvalidState, usecase.ErrorCode(err))

	entries, _ = store.ListForLead(ctx, lead.ID)
	assert.Len(t, entries, before)

	// Invariante central: a última entrada com estágio do ledger bate
	// com o estágio atual do registro.
	last := lastStageEntry(entries)
	require.NotNil(t, last)
	assert.Equal(t, stored.CurrentStage, *last.NewStage)
	assert.Equal(t, entity.EntryPaymentConfirmed, last.Type)
}

// TestEngineConcurrentMoveLoserFails - dois boards desatualizados
// disputando o mesmo lead: só um movimento vence
func TestEngineConcurrentMoveLoserFails(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	createUC := usecase.NewCreateLeadUseCase(store, store, nil)
	moveUC := usecase.NewMoveStageUseCase(store, store, nil)

	lead, err := createUC.Execute(ctx, usecase.CreateLeadInput{
		Name:  "Maria Souza",
		Phone: "(21) 98888-7777",
	}, sdrActor)
	require.NoError(t, err)

	// Primeiro ator vence
	_, err = moveUC.ProposeMove(ctx, lead.ID, entity.StageFirstContact, entity.StageQualifying, sdrActor)
	require.NoError(t, err)

	// Segundo ator ainda enxerga o estágio antigo
	_, err = moveUC.ProposeMove(ctx, lead.ID, entity.StageFirstContact, entity.StageQualifying, adminActor)
	assert.Equal(t, usecase.CodeConflict, usecase.ErrorCode(err))

	// Só um stage-change no ledger
	entries, _ := store.ListForLead(ctx, lead.ID)
	var changes int
	for _, e := range entries {
		if e.Type == entity.EntryStageChange {
			changes++
		}
	}
	assert.Equal(t, 1, changes)
}
