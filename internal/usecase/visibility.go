package usecase

import "github.com/xavierca1/ligue-crm/internal/entity"

// Tabela estática de visibilidade por papel. Admin e team-lead enxergam
// o funil inteiro; closer e SDR só as colunas do próprio recorte.
var roleStages = map[entity.Role][]string{
	entity.RoleAdmin:    allStageIDs(),
	entity.RoleTeamLead: allStageIDs(),
	entity.RoleCloser: {
		entity.StageProposalSent,
		entity.StageInNegotiation,
		entity.StagePendingClosure,
		entity.StageApplication,
		entity.StageWon,
		entity.StageLost,
	},
	entity.RoleSDR: {
		entity.StageFirstContact,
		entity.StageQualifying,
		entity.StageProposalSent,
	},
}

func allStageIDs() []string {
	ids := make([]string, 0, len(entity.Stages))
	for _, s := range entity.Stages {
		ids = append(ids, s.ID)
	}
	return ids
}

// VisibleStages retorna os estágios que o papel pode ver, na ordem do
// catálogo. Papel desconhecido lê tudo (fail-open só para leitura; a
// escrita continua barrada em CanDropInto).
func VisibleStages(role entity.Role) []string {
	if stages, ok := roleStages[role]; ok {
		return stages
	}
	return allStageIDs()
}

// CanDropInto diz se o papel pode arrastar um lead para o estágio.
// Papel desconhecido não escreve em lugar nenhum.
func CanDropInto(role entity.Role, stageID string) bool {
	stages, ok := roleStages[role]
	if !ok {
		return false
	}
	for _, id := range stages {
		if id == stageID {
			return true
		}
	}
	return false
}
