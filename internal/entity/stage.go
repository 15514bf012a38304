package entity

// Stage é uma coluna do kanban. O catálogo é estático: a ordem do slice
// define a ordem das colunas no board.
type Stage struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
}

const (
	StageFirstContact   = "first-contact"
	StageQualifying     = "qualifying"
	StageProposalSent   = "proposal-sent"
	StageInNegotiation  = "in-negotiation"
	StagePendingClosure = "pending-closure"
	StageApplication    = "application"
	StageWon            = "won"
	StageLost           = "lost"
)

// Stages na ordem de exibição do funil.
var Stages = []Stage{
	{ID: StageFirstContact, DisplayName: "Primeiro Contato", Color: "#64748b"},
	{ID: StageQualifying, DisplayName: "Qualificação", Color: "#0ea5e9"},
	{ID: StageProposalSent, DisplayName: "Proposta Enviada", Color: "#8b5cf6"},
	{ID: StageInNegotiation, DisplayName: "Em Negociação", Color: "#f59e0b"},
	{ID: StagePendingClosure, DisplayName: "Fechamento Pendente", Color: "#f97316"},
	{ID: StageApplication, DisplayName: "Aplicação", Color: "#14b8a6"},
	{ID: StageWon, DisplayName: "Ganho", Color: "#22c55e"},
	{ID: StageLost, DisplayName: "Perdido", Color: "#ef4444"},
}

// IsValidStage diz se o id pertence ao catálogo.
func IsValidStage(id string) bool {
	for _, s := range Stages {
		if s.ID == id {
			return true
		}
	}
	return false
}

// StageByID retorna o estágio do catálogo (ok=false se não existir).
func StageByID(id string) (Stage, bool) {
	for _, s := range Stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// Temperatura do lead.
const (
	TemperatureCold = "cold"
	TemperatureWarm = "warm"
	TemperatureHot  = "hot"
)

var Temperatures = []string{TemperatureCold, TemperatureWarm, TemperatureHot}

func IsValidTemperature(t string) bool {
	for _, v := range Temperatures {
		if v == t {
			return true
		}
	}
	return false
}

// Tipo de fechamento do negócio.
const (
	NegotiationRecurring  = "recurring"
	NegotiationPixUpfront = "pix-upfront"
	NegotiationFullCard   = "full-card"
	NegotiationOther      = "other"
)

var NegotiationTypes = []string{
	NegotiationRecurring,
	NegotiationPixUpfront,
	NegotiationFullCard,
	NegotiationOther,
}

func IsValidNegotiationType(t string) bool {
	for _, v := range NegotiationTypes {
		if v == t {
			return true
		}
	}
	return false
}
