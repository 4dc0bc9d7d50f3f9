package service

import (
	"context"
	"testing"
	"time"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(repo *MockRFPRepository) *DashboardService {
	rates := DashboardRates{AIResponseRate: 78, WinRate: 32}
	return NewDashboardServiceWithClock(repo, rates, fixedClock(testNow))
}

func TestDashboardService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates the collection", func(t *testing.T) {
		mockRepo := new(MockRFPRepository)
		service := newTestDashboardService(mockRepo)

		rfps := []*domain.RFP{
			{
				ID:          1,
				Status:      domain.RFPStatusInProgress,
				BudgetRange: "$500K - $750K",
				DueDate:     testNow.AddDate(0, 0, 3),
			},
			{
				ID:          2,
				Status:      domain.RFPStatusCompleted,
				BudgetRange: "$100K - $250K",
				DueDate:     testNow.AddDate(0, 0, 20),
			},
			{
				ID:          3,
				Status:      domain.RFPStatusUrgent,
				BudgetRange: "$1M - $2M",
				DueDate:     testNow.AddDate(0, 0, 7),
			},
		}
		mockRepo.On("ListAll", mock.Anything).Return(rfps, nil)
		mockRepo.On("ListRecent", mock.Anything, RecentRFPLimit).Return(rfps[:2], nil)

		stats, recent, err := service.Snapshot(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, stats.ActiveRFPs)
		// 500000/10000 + 100000/10000 + 1000000/10000
		assert.Equal(t, int64(160), stats.PendingPlacements)
		// (750000 + 250000 + 2000000) / 1e6
		assert.InDelta(t, 3.0, stats.PotentialRevenue, 0.001)
		assert.Equal(t, 2, stats.DueThisWeek)
		// 1 of 3 completed, truncated
		assert.Equal(t, 33, stats.CompletionRate)
		assert.Equal(t, 78, stats.AIResponseRate)
		assert.Equal(t, 32, stats.WinRate)
		assert.Len(t, recent, 2)
	})

	t.Run("empty collection yields zero rates", func(t *testing.T) {
		mockRepo := new(MockRFPRepository)
		service := newTestDashboardService(mockRepo)

		mockRepo.On("ListAll", mock.Anything).Return([]*domain.RFP{}, nil)
		mockRepo.On("ListRecent", mock.Anything, RecentRFPLimit).Return([]*domain.RFP{}, nil)

		stats, recent, err := service.Snapshot(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.ActiveRFPs)
		assert.Equal(t, 0, stats.CompletionRate)
		assert.Zero(t, stats.PendingPlacements)
		assert.Zero(t, stats.PotentialRevenue)
		assert.Empty(t, recent)
	})

	t.Run("skips malformed budget without failing", func(t *testing.T) {
		mockRepo := new(MockRFPRepository)
		service := newTestDashboardService(mockRepo)

		rfps := []*domain.RFP{
			{ID: 1, Status: domain.RFPStatusNew, BudgetRange: "call us", DueDate: testNow.AddDate(0, 0, 60)},
			{ID: 2, Status: domain.RFPStatusNew, BudgetRange: "$200K - $300K", DueDate: testNow.AddDate(0, 0, 60)},
		}
		mockRepo.On("ListAll", mock.Anything).Return(rfps, nil)
		mockRepo.On("ListRecent", mock.Anything, RecentRFPLimit).Return(rfps, nil)

		stats, _, err := service.Snapshot(ctx)

		require.NoError(t, err)
		// The malformed row still counts toward active and totals
		assert.Equal(t, 2, stats.ActiveRFPs)
		assert.Equal(t, int64(20), stats.PendingPlacements)
		assert.InDelta(t, 0.3, stats.PotentialRevenue, 0.001)
	})

	t.Run("due window is inclusive on both ends", func(t *testing.T) {
		mockRepo := new(MockRFPRepository)
		service := newTestDashboardService(mockRepo)

		today := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
		rfps := []*domain.RFP{
			{ID: 1, Status: domain.RFPStatusNew, BudgetRange: "$10K - $20K", DueDate: today},
			{ID: 2, Status: domain.RFPStatusNew, BudgetRange: "$10K - $20K", DueDate: today.AddDate(0, 0, 7)},
			{ID: 3, Status: domain.RFPStatusNew, BudgetRange: "$10K - $20K", DueDate: today.AddDate(0, 0, 8)},
			{ID: 4, Status: domain.RFPStatusNew, BudgetRange: "$10K - $20K", DueDate: today.AddDate(0, 0, -1)},
		}
		mockRepo.On("ListAll", mock.Anything).Return(rfps, nil)
		mockRepo.On("ListRecent", mock.Anything, RecentRFPLimit).Return(rfps, nil)

		stats, _, err := service.Snapshot(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, stats.DueThisWeek)
	})
}
