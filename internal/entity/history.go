package entity

import (
	"time"

	"github.com/google/uuid"
)

// EntryType é o tipo fechado de evento do histórico. Qualquer tipo novo
// entra aqui como constante, nunca como string solta no código.
type EntryType string

const (
	EntryCreation         EntryType = "creation"
	EntryEdit             EntryType = "edit"
	EntryStageChange      EntryType = "stage-change"
	EntryNote             EntryType = "note"
	EntryPaymentConfirmed EntryType = "payment-confirmed"
)

// HistoryEntry é um evento imutável do ledger de um lead. Entradas nunca
// são atualizadas nem removidas, só anexadas e lidas.
type HistoryEntry struct {
	ID     string `json:"id"`
	LeadID string `json:"lead_id"`

	// PreviousStage é nulo na criação; NewStage é nulo em edits e notas.
	PreviousStage *string `json:"previous_stage,omitempty"`
	NewStage      *string `json:"new_stage,omitempty"`

	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Type      EntryType `json:"type"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHistoryEntry monta a entrada com id e carimbo de tempo.
func NewHistoryEntry(leadID string, entryType EntryType, actor Actor, now time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Type:      entryType,
		CreatedAt: now,
	}
}

// WithStages preenche a transição de estágio (ponteiros aceitam nulo
// para criação e para eventos sem estágio).
func (e *HistoryEntry) WithStages(previous, current *string) *HistoryEntry {
	e.PreviousStage = previous
	e.NewStage = current
	return e
}

// WithNote anexa o texto livre do evento.
func (e *HistoryEntry) WithNote(note string) *HistoryEntry {
	e.Note = note
	return e
}
