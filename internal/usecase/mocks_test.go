package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.PipelineLead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *entity.PipelineLead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.PipelineLead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PipelineLead), args.Error(1)
}

func (m *MockLeadRepository) ListAll(ctx context.Context) ([]*entity.PipelineLead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PipelineLead), args.Error(1)
}

// MockHistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListForLead(ctx context.Context, leadID string) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.HistoryEntry), args.Error(1)
}

// MockStageCommitter
type MockStageCommitter struct {
	mock.Mock
}

func (m *MockStageCommitter) CommitMove(ctx context.Context, lead *entity.PipelineLead, fromStage string, entry *entity.HistoryEntry) error {
	args := m.Called(ctx, lead, fromStage, entry)
	return args.Error(0)
}

// FakeEventProducer guarda os eventos num canal para os testes poderem
// esperar a publicação assíncrona sem sleep.
type FakeEventProducer struct {
	Published chan queue.PipelineEventPayload
}

func NewFakeEventProducer() *FakeEventProducer {
	return &FakeEventProducer{Published: make(chan queue.PipelineEventPayload, 10)}
}

func (f *FakeEventProducer) PublishPipelineEvent(ctx context.Context, payload queue.PipelineEventPayload) error {
	f.Published <- payload
	return nil
}
