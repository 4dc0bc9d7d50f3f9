package domain

// Analysis is the AI analysis document attached to an RFP.
type Analysis struct {
	Status          string   `json:"status"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	RiskFactors     []string `json:"risk_factors,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// Proposal is the generated media proposal document attached to an RFP.
type Proposal struct {
	Title            string            `json:"title"`
	ExecutiveSummary string            `json:"executive_summary"`
	Strategy         string            `json:"strategy"`
	BudgetBreakdown  map[string]string `json:"budget_breakdown"`
	Timeline         string            `json:"timeline"`
	KPIs             []string          `json:"kpis"`
}

// MediaPlacement is one media placement line item extracted from an
// RFP. Placements are computed on request and never stored.
type MediaPlacement struct {
	Channel  string `json:"channel"`
	Budget   string `json:"budget"`
	Duration string `json:"duration"`
}

// QualityCheck is the proposal quality assessment document attached
// to an RFP. Scores are on a 0-10 scale.
type QualityCheck struct {
	OverallScore    float64  `json:"overall_score"`
	Completeness    float64  `json:"completeness"`
	Accuracy        float64  `json:"accuracy"`
	Compliance      float64  `json:"compliance"`
	Recommendations []string `json:"recommendations"`
}
