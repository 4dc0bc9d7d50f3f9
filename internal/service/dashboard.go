package service

import (
	"context"
	"log"
	"time"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/telemetry"
)

// RecentRFPLimit is how many RFPs the dashboard's recent list shows
const RecentRFPLimit = 4

// DashboardStats is the aggregate snapshot shown on the dashboard.
// AIResponseRate and WinRate come from configuration, not from the
// RFP collection.
type DashboardStats struct {
	ActiveRFPs        int     `json:"active_rfps"`
	PendingPlacements int64   `json:"pending_placements"`
	AIResponseRate    int     `json:"ai_response_rate"`
	WinRate           int     `json:"win_rate"`
	DueThisWeek       int     `json:"due_this_week"`
	CompletionRate    int     `json:"completion_rate"`
	PotentialRevenue  float64 `json:"potential_revenue"`
}

// DashboardRates holds the configured rate constants surfaced in the
// stats snapshot.
type DashboardRates struct {
	AIResponseRate int
	WinRate        int
}

// DashboardService computes the stats snapshot from the live RFP
// collection on every request; nothing is cached.
type DashboardService struct {
	rfpRepo RFPRepositoryInterface
	rates   DashboardRates
	clock   Clock
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(rfpRepo RFPRepositoryInterface, rates DashboardRates) *DashboardService {
	return &DashboardService{
		rfpRepo: rfpRepo,
		rates:   rates,
		clock:   DefaultClock,
	}
}

// NewDashboardServiceWithClock creates a new DashboardService with a
// custom clock (for testing)
func NewDashboardServiceWithClock(rfpRepo RFPRepositoryInterface, rates DashboardRates, clock Clock) *DashboardService {
	return &DashboardService{
		rfpRepo: rfpRepo,
		rates:   rates,
		clock:   clock,
	}
}

// Snapshot computes the stats and returns them with the most recently
// updated RFPs.
func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardStats, []*domain.RFP, error) {
	ctx, span := telemetry.StartSpan(ctx, "DashboardService.Snapshot", telemetry.SpanAttributes{
		Operation: "stats",
	})
	defer span.End()

	rfps, err := s.rfpRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := s.aggregate(rfps)

	recent, err := s.rfpRepo.ListRecent(ctx, RecentRFPLimit)
	if err != nil {
		return nil, nil, err
	}

	return stats, recent, nil
}

// aggregate folds the RFP collection into a stats snapshot. A single
// malformed RFP is skipped and logged, never fatal.
func (s *DashboardService) aggregate(rfps []*domain.RFP) *DashboardStats {
	today := truncateToDay(s.clock())
	weekEnd := today.AddDate(0, 0, 7)

	stats := &DashboardStats{
		AIResponseRate: s.rates.AIResponseRate,
		WinRate:        s.rates.WinRate,
	}

	var total, completed int
	var revenueHigh int64

	for _, rfp := range rfps {
		total++

		if rfp.IsActive() {
			stats.ActiveRFPs++
		}
		if rfp.Status == domain.RFPStatusCompleted {
			completed++
		}

		due := truncateToDay(rfp.DueDate)
		if !due.Before(today) && !due.After(weekEnd) {
			stats.DueThisWeek++
		}

		budget, err := domain.ParseBudgetRange(rfp.BudgetRange)
		if err != nil {
			log.Printf("dashboard: skipping rfp %d budget %q: %v", rfp.ID, rfp.BudgetRange, err)
			continue
		}
		stats.PendingPlacements += budget.Low / 10_000
		revenueHigh += budget.High
	}

	if total > 0 {
		stats.CompletionRate = completed * 100 / total
	}
	stats.PotentialRevenue = float64(revenueHigh) / 1_000_000

	return stats
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
