package entity

// Role do usuário autenticado. Catálogo fechado: comparações de papel
// acontecem só aqui e no resolver de visibilidade, nunca espalhadas
// por string nos handlers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "team-lead"
	RoleCloser   Role = "closer"
	RoleSDR      Role = "sdr"
)

// Actor é quem executa a operação. Resolvido pelo middleware de auth
// antes de qualquer caso de uso rodar.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
