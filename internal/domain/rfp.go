package domain

import (
	"fmt"
	"time"
)

// RFPStatus represents the workflow status of an RFP
type RFPStatus string

const (
	RFPStatusNew         RFPStatus = "New"
	RFPStatusInProgress  RFPStatus = "In Progress"
	RFPStatusUnderReview RFPStatus = "Under Review"
	RFPStatusCompleted   RFPStatus = "Completed"
	RFPStatusUrgent      RFPStatus = "Urgent"
	RFPStatusNotStarted  RFPStatus = "Not Started"
)

// DueDateFormat is the wire format for RFP due dates
const DueDateFormat = "2006-01-02"

// Attachment is a file attached to an RFP. Attachments are owned by
// their RFP and are deleted with it. StorageKey is set once the file
// has been registered with object storage.
type Attachment struct {
	ID         int
	Filename   string
	Type       string
	Size       string
	StorageKey string
	UploadedAt time.Time
}

// RFP represents an advertising request for proposal
type RFP struct {
	ID                   int
	Name                 string
	AgencyName           string
	AdvertiserClientName string
	CampaignType         string
	BudgetRange          string
	DueDate              time.Time
	Status               RFPStatus
	CompletionPercentage int
	Content              string
	AIProcessingEnabled  bool
	TeamMemberIDs        []int
	Attachments          []Attachment
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Workflow stage documents, nil until generated
	Analysis     *Analysis
	Proposal     *Proposal
	QualityCheck *QualityCheck
}

// ValidateRFP validates an RFP instance
func ValidateRFP(r *RFP) error {
	if r == nil {
		return fmt.Errorf("rfp cannot be nil")
	}

	if r.Name == "" {
		return fmt.Errorf("rfp Name is required")
	}

	if r.AgencyName == "" {
		return fmt.Errorf("rfp AgencyName is required")
	}

	if r.CampaignType == "" {
		return fmt.Errorf("rfp CampaignType is required")
	}

	if r.BudgetRange == "" {
		return fmt.Errorf("rfp BudgetRange is required")
	}

	if r.DueDate.IsZero() {
		return fmt.Errorf("rfp DueDate is required")
	}

	if !IsValidRFPStatus(r.Status) {
		return fmt.Errorf("rfp Status is invalid: %s", r.Status)
	}

	if r.CompletionPercentage < 0 || r.CompletionPercentage > 100 {
		return fmt.Errorf("rfp CompletionPercentage must be between 0 and 100")
	}

	return nil
}

// IsValidRFPStatus checks if an RFPStatus is valid
func IsValidRFPStatus(s RFPStatus) bool {
	switch s {
	case RFPStatusNew, RFPStatusInProgress, RFPStatusUnderReview,
		RFPStatusCompleted, RFPStatusUrgent, RFPStatusNotStarted:
		return true
	}
	return false
}

// IsActive reports whether the RFP counts towards the dashboard's
// active total. Everything that is not completed is active.
func (r *RFP) IsActive() bool {
	return r.Status != RFPStatusCompleted
}
