package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/adresponse/adresponse/internal/domain"
)

// PendingAnalysisLister lists RFPs with AI processing enabled that have
// no analysis document yet
type PendingAnalysisLister interface {
	ListPendingAnalysis(ctx context.Context) ([]*domain.RFP, error)
}

// Analyzer runs the analysis stage for a single RFP
type Analyzer interface {
	Analyze(ctx context.Context, id int) (*domain.Analysis, error)
}

// AnalysisWorker drains the backlog of RFPs awaiting analysis. One
// failing RFP does not block the rest of the batch; it stays pending
// and is retried on the next poll.
type AnalysisWorker struct {
	pending PendingAnalysisLister
	stages  Analyzer
}

// NewAnalysisWorker creates a new AnalysisWorker instance
func NewAnalysisWorker(pending PendingAnalysisLister, stages Analyzer) *AnalysisWorker {
	return &AnalysisWorker{
		pending: pending,
		stages:  stages,
	}
}

// ProcessJobs analyzes every RFP currently awaiting analysis
func (w *AnalysisWorker) ProcessJobs(ctx context.Context) error {
	rfps, err := w.pending.ListPendingAnalysis(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending rfps: %w", err)
	}

	if len(rfps) == 0 {
		return nil
	}

	for _, rfp := range rfps {
		if _, err := w.stages.Analyze(ctx, rfp.ID); err != nil {
			log.Printf("analysis worker: rfp %d: %v", rfp.ID, err)
			continue
		}
		log.Printf("analysis worker: analyzed rfp %d", rfp.ID)
	}

	return nil
}
