package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// TestVisibleStagesPerRole
func TestVisibleStagesPerRole(t *testing.T) {
	assert.Len(t, usecase.VisibleStages(entity.RoleAdmin), len(entity.Stages))
	assert.Len(t, usecase.VisibleStages(entity.RoleTeamLead), len(entity.Stages))

	assert.Equal(t, []string{
		entity.StageProposalSent,
		entity.StageInNegotiation,
		entity.StagePendingClosure,
		entity.StageApplication,
		entity.StageWon,
		entity.StageLost,
	}, usecase.VisibleStages(entity.RoleCloser))

	assert.Equal(t, []string{
		entity.StageFirstContact,
		entity.StageQualifying,
		entity.StageProposalSent,
	}, usecase.VisibleStages(entity.RoleSDR))
}

// TestUnknownRoleReadsEverythingWritesNothing - leitura fail-open,
// escrita fail-closed
func TestUnknownRoleReadsEverythingWritesNothing(t *testing.T) {
	unknown := entity.Role("estagiario")

	assert.Len(t, usecase.VisibleStages(unknown), len(entity.Stages))

	for _, stage := range entity.Stages {
		assert.False(t, usecase.CanDropInto(unknown, stage.ID))
	}
}

// TestCanDropInto
func TestCanDropInto(t *testing.T) {
	assert.True(t, usecase.CanDropInto(entity.RoleAdmin, entity.StageLost))
	assert.True(t, usecase.CanDropInto(entity.RoleSDR, entity.StageProposalSent))
	assert.False(t, usecase.CanDropInto(entity.RoleSDR, entity.StageWon))
	assert.False(t, usecase.CanDropInto(entity.RoleCloser, entity.StageFirstContact))
	assert.True(t, usecase.CanDropInto(entity.RoleCloser, entity.StageApplication))
}

// TestStageCatalog - sanidade do catálogo estático
func TestStageCatalog(t *testing.T) {
	assert.True(t, entity.IsValidStage(entity.StageApplication))
	assert.False(t, entity.IsValidStage("limbo"))

	first, ok := entity.StageByID(entity.StageFirstContact)
	assert.True(t, ok)
	assert.Equal(t, "Primeiro Contato", first.DisplayName)

	// Primeiro contato abre o funil, perdido fecha
	assert.Equal(t, entity.StageFirstContact, entity.Stages[0].ID)
	assert.Equal(t, entity.StageLost, entity.Stages[len(entity.Stages)-1].ID)
}
