package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/service"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Snapshot(ctx context.Context) (*service.DashboardStats, []*domain.RFP, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.DashboardStats), args.Get(1).([]*domain.RFP), args.Error(2)
}

func TestDashboardHandler_Stats(t *testing.T) {
	mockSvc := new(MockDashboardService)
	handler := NewDashboardHandler(mockSvc)

	mockSvc.On("Snapshot", mock.Anything).Return(&service.DashboardStats{
		ActiveRFPs:        5,
		PendingPlacements: 160,
		AIResponseRate:    78,
		WinRate:           32,
		DueThisWeek:       2,
		CompletionRate:    33,
		PotentialRevenue:  3.0,
	}, []*domain.RFP{newTestRFP()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	handler.Stats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["active_rfps"])
	assert.Equal(t, float64(78), stats["ai_response_rate"])
	assert.Equal(t, 3.0, stats["potential_revenue"])

	recent := body["recent_rfps"].([]interface{})
	require.Len(t, recent, 1)
}
