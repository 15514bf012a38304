package usecase

import "github.com/xavierca1/ligue-crm/internal/entity"

type CreateLeadInput struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email,omitempty"`
	Company        string  `json:"company,omitempty"`
	Segment        string  `json:"segment,omitempty"`
	Temperature    string  `json:"temperature,omitempty"`
	LeadSource     string  `json:"lead_source,omitempty"`
	PotentialValue float64 `json:"potential_value,omitempty"`
}

// UpdateLeadInput é um patch parcial: ponteiro nulo significa "não
// mexer no campo". Estágio não aparece aqui de propósito — toda mudança
// de coluna passa pelo motor de transição.
type UpdateLeadInput struct {
	Name           *string  `json:"name,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Company        *string  `json:"company,omitempty"`
	Segment        *string  `json:"segment,omitempty"`
	Temperature    *string  `json:"temperature,omitempty"`
	LeadSource     *string  `json:"lead_source,omitempty"`
	PotentialValue *float64 `json:"potential_value,omitempty"`
	PaymentTerms   *string  `json:"payment_terms,omitempty"`
}

// ClosingDataInput é o payload exigido pelo gate de aplicação.
// SaleValue e NegotiationType são obrigatórios; o resto é opcional.
type ClosingDataInput struct {
	SaleValue       float64 `json:"sale_value"`
	PendingValue    float64 `json:"pending_value,omitempty"`
	NegotiationType string  `json:"negotiation_type"`
	PaymentTerms    string  `json:"payment_terms,omitempty"`
}

type MoveStatus string

const (
	MoveCommitted        MoveStatus = "committed"
	MoveNeedsClosingData MoveStatus = "needs_closing_data"
)

// MoveOutcome é o resultado de uma proposta de movimento aceita.
// NeedsClosingData significa que nada foi gravado ainda: o caller
// precisa voltar com ConfirmClosingData.
type MoveOutcome struct {
	Status MoveStatus           `json:"status"`
	Lead   *entity.PipelineLead `json:"lead,omitempty"`
}

type BoardFilters struct {
	Query       string `json:"query,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}
