package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adresponse/adresponse/internal/domain"
)

// MockJobProcessor is a mock implementation of JobProcessor
type MockJobProcessor struct {
	mock.Mock
}

func (m *MockJobProcessor) ProcessJobs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPendingLister is a mock implementation of PendingAnalysisLister
type MockPendingLister struct {
	mock.Mock
}

func (m *MockPendingLister) ListPendingAnalysis(ctx context.Context) ([]*domain.RFP, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RFP), args.Error(1)
}

// MockAnalyzer is a mock implementation of Analyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, id int) (*domain.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func TestWorker_StartStop(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(nil)

	worker := NewWorker(mockProcessor, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	time.Sleep(250 * time.Millisecond)

	worker.Stop()
	wg.Wait()

	mockProcessor.AssertCalled(t, "ProcessJobs", mock.Anything)
}

func TestWorker_ContextCancellation(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(nil)

	worker := NewWorker(mockProcessor, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	time.Sleep(150 * time.Millisecond)

	cancel()
	wg.Wait()

	mockProcessor.AssertCalled(t, "ProcessJobs", mock.Anything)
}

func TestAnalysisWorker_ProcessJobs_NoPending(t *testing.T) {
	mockPending := new(MockPendingLister)
	mockStages := new(MockAnalyzer)

	mockPending.On("ListPendingAnalysis", mock.Anything).Return([]*domain.RFP{}, nil)

	worker := NewAnalysisWorker(mockPending, mockStages)
	err := worker.ProcessJobs(context.Background())

	assert.NoError(t, err)
	mockPending.AssertExpectations(t)
	mockStages.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalysisWorker_ProcessJobs_AnalyzesBacklog(t *testing.T) {
	mockPending := new(MockPendingLister)
	mockStages := new(MockAnalyzer)

	pending := []*domain.RFP{{ID: 1}, {ID: 2}}
	mockPending.On("ListPendingAnalysis", mock.Anything).Return(pending, nil)
	mockStages.On("Analyze", mock.Anything, 1).Return(&domain.Analysis{Status: "completed"}, nil)
	mockStages.On("Analyze", mock.Anything, 2).Return(&domain.Analysis{Status: "completed"}, nil)

	worker := NewAnalysisWorker(mockPending, mockStages)
	err := worker.ProcessJobs(context.Background())

	assert.NoError(t, err)
	mockPending.AssertExpectations(t)
	mockStages.AssertExpectations(t)
}

func TestAnalysisWorker_ProcessJobs_FailureDoesNotBlockBatch(t *testing.T) {
	mockPending := new(MockPendingLister)
	mockStages := new(MockAnalyzer)

	pending := []*domain.RFP{{ID: 1}, {ID: 2}}
	mockPending.On("ListPendingAnalysis", mock.Anything).Return(pending, nil)
	mockStages.On("Analyze", mock.Anything, 1).Return(nil, errors.New("stage failed"))
	mockStages.On("Analyze", mock.Anything, 2).Return(&domain.Analysis{Status: "completed"}, nil)

	worker := NewAnalysisWorker(mockPending, mockStages)
	err := worker.ProcessJobs(context.Background())

	assert.NoError(t, err)
	mockStages.AssertExpectations(t)
}

func TestAnalysisWorker_ProcessJobs_ListError(t *testing.T) {
	mockPending := new(MockPendingLister)
	mockStages := new(MockAnalyzer)

	mockPending.On("ListPendingAnalysis", mock.Anything).Return(nil, errors.New("database error"))

	worker := NewAnalysisWorker(mockPending, mockStages)
	err := worker.ProcessJobs(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list pending rfps")
	mockPending.AssertExpectations(t)
}
