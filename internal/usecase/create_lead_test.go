package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// TestCreateLeadSuccess - lead nasce no primeiro contato com entrada de
// criação no ledger
func TestCreateLeadSuccess(t *testing.T) {
	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	mockLeads.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockHistory.On("Append", mock.Anything, mock.MatchedBy(func(e *entity.HistoryEntry) bool {
		return e.Type == entity.EntryCreation &&
			e.PreviousStage == nil &&
			e.NewStage != nil && *e.NewStage == entity.StageFirstContact
	})).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockHistory, nil)
	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	uc.Now = func() time.Time { return fixed }

	lead, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Name:           "Maria Souza",
		Phone:          "(21) 98888-7777",
		Temperature:    entity.TemperatureHot,
		PotentialValue: 5000,
	}, sdrActor)

	assert.NoError(t, err)
	assert.Equal(t, entity.StageFirstContact, lead.CurrentStage)
	assert.Equal(t, sdrActor.ID, lead.OwnerID)
	assert.Equal(t, sdrActor.Name, lead.OwnerName)
	assert.Equal(t, fixed, lead.CreatedAt)
	assert.Equal(t, entity.TemperatureHot, lead.Temperature)
	mockHistory.AssertExpectations(t)
}

// TestCreateLeadValidation - nome e telefone são obrigatórios
func TestCreateLeadValidation(t *testing.T) {
	uc := usecase.NewCreateLeadUseCase(new(MockLeadRepository), new(MockHistoryRepository), nil)

	_, err := uc.Execute(context.Background(), usecase.CreateLeadInput{Name: "Sem Telefone"}, sdrActor)

	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
}

// TestCreateLeadRollsBackWhenHistoryFails - lead sem entrada de criação
// não pode existir: compensação apaga o lead
func TestCreateLeadRollsBackWhenHistoryFails(t *testing.T) {
	mockLeads := new(MockLeadRepository)
	mockHistory := new(MockHistoryRepository)

	mockLeads.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockHistory.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))
	mockLeads.On("Delete", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockHistory, nil)

	lead, err := uc.Execute(context.Background(), usecase.CreateLeadInput{
		Name:  "Pedro Lima",
		Phone: "(31) 97777-6666",
	}, sdrActor)

	assert.Nil(t, lead)
	assert.Equal(t, usecase.CodePersistence, usecase.ErrorCode(err))
	mockLeads.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}
