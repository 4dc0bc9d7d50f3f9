package handlers

import (
	"context"
	"net/http"

	"github.com/adresponse/adresponse/internal/api"
	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/service"
)

type DashboardService interface {
	Snapshot(ctx context.Context) (*service.DashboardStats, []*domain.RFP, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, recent, err := h.svc.Snapshot(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	recentRFPs := make([]*RFPResponse, len(recent))
	for i, rfp := range recent {
		recentRFPs[i] = rfpToResponse(rfp)
	}

	api.Success(w, http.StatusOK, api.Payload{
		"stats":       stats,
		"recent_rfps": recentRFPs,
	})
}
