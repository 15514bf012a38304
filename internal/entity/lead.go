package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// PipelineLead é o registro autoritativo de um negócio no funil.
// currentStage sempre é um id válido do catálogo de estágios e só muda
// pelo motor de transição (nunca por update direto de campo).
type PipelineLead struct {
	ID string `json:"id"`

	// Contato
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
	Segment string `json:"segment,omitempty"`

	// Classificação
	Temperature string `json:"temperature"`
	LeadSource  string `json:"lead_source,omitempty"`

	// Estágio
	CurrentStage   string    `json:"current_stage"`
	StageUpdatedAt time.Time `json:"stage_updated_at"`

	// Comercial
	PotentialValue  float64 `json:"potential_value,omitempty"`
	SaleValue       float64 `json:"sale_value,omitempty"`
	PendingValue    float64 `json:"pending_value,omitempty"`
	NegotiationType string  `json:"negotiation_type,omitempty"`
	PaymentTerms    string  `json:"payment_terms,omitempty"`

	// PaymentConfirmedAt é não-nulo se e somente se PaymentConfirmed.
	// A confirmação só transita false -> true, nunca volta.
	PaymentConfirmed   bool       `json:"payment_confirmed"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty"`

	// Donos
	OwnerID         string `json:"owner_id"`
	OwnerName       string `json:"owner_name"`
	CloserOwnerID   string `json:"closer_owner_id,omitempty"`
	CloserOwnerName string `json:"closer_owner_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewPipelineLead(name, phone string, owner Actor, now time.Time) (*PipelineLead, error) {
	lead := &PipelineLead{
		ID:             uuid.New().String(),
		Name:           name,
		Phone:          phone,
		Temperature:    TemperatureCold,
		CurrentStage:   StageFirstContact,
		StageUpdatedAt: now,
		OwnerID:        owner.ID,
		OwnerName:      owner.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *PipelineLead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(l.Phone) == "" {
		return errors.New("phone is required")
	}
	if !IsValidStage(l.CurrentStage) {
		return errors.New("current_stage is not a known stage")
	}
	if !IsValidTemperature(l.Temperature) {
		return errors.New("temperature must be cold, warm or hot")
	}
	if l.PotentialValue < 0 {
		return errors.New("potential_value must not be negative")
	}
	if l.PaymentConfirmed != (l.PaymentConfirmedAt != nil) {
		return errors.New("payment_confirmed_at must be set exactly when payment is confirmed")
	}
	return nil
}
