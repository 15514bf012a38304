package usecase

import (
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ProjectBoard agrupa o snapshot de leads por estágio, já filtrado e
// recortado pelo papel. Derivação pura: a ordem dentro de cada coluna é
// a ordem de entrada do slice (quem quiser outra ordem ordena antes).
func ProjectBoard(leads []*entity.PipelineLead, role entity.Role, filters BoardFilters) map[string][]*entity.PipelineLead {
	visible := VisibleStages(role)

	board := make(map[string][]*entity.PipelineLead, len(visible))
	for _, stageID := range visible {
		board[stageID] = []*entity.PipelineLead{}
	}

	for _, lead := range leads {
		bucket, ok := board[lead.CurrentStage]
		if !ok {
			continue // estágio fora do recorte do papel
		}
		if !matchesFilters(lead, filters) {
			continue
		}
		board[lead.CurrentStage] = append(bucket, lead)
	}

	return board
}

// matchesFilters aplica os filtros em AND: texto livre (nome/telefone,
// case-insensitive), temperatura exata e dono exato.
func matchesFilters(lead *entity.PipelineLead, f BoardFilters) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		name := strings.ToLower(lead.Name)
		if !strings.Contains(name, q) && !strings.Contains(lead.Phone, f.Query) {
			return false
		}
	}
	if f.Temperature != "" && lead.Temperature != f.Temperature {
		return false
	}
	if f.OwnerID != "" && lead.OwnerID != f.OwnerID {
		return false
	}
	return true
}

// StageTotalValue soma o valor da coluna: valor de venda depois do
// fechamento, valor potencial antes.
func StageTotalValue(leads []*entity.PipelineLead) float64 {
	var total float64
	for _, lead := range leads {
		total += LeadValue(lead)
	}
	return total
}

func LeadValue(lead *entity.PipelineLead) float64 {
	if lead.SaleValue > 0 {
		return lead.SaleValue
	}
	return lead.PotentialValue
}

// BoardColumn é a coluna pronta para renderização, na ordem do catálogo.
type BoardColumn struct {
	Stage      entity.Stage           `json:"stage"`
	Leads      []*entity.PipelineLead `json:"leads"`
	TotalValue float64                `json:"total_value"`
}

// BuildBoard monta as colunas visíveis do papel com seus totais.
func BuildBoard(leads []*entity.PipelineLead, role entity.Role, filters BoardFilters) []BoardColumn {
	board := ProjectBoard(leads, role, filters)

	columns := make([]BoardColumn, 0, len(board))
	for _, stage := range entity.Stages {
		bucket, ok := board[stage.ID]
		if !ok {
			continue
		}
		columns = append(columns, BoardColumn{
			Stage:      stage,
			Leads:      bucket,
			TotalValue: StageTotalValue(bucket),
		})
	}

	return columns
}
