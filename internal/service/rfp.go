package service

import (
	"context"
	"strings"
	"time"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/telemetry"
	"github.com/adresponse/adresponse/internal/workflow"
)

// ListRFPsFilter narrows and paginates an RFP listing.
type ListRFPsFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// RFPPage is one page of a filtered RFP listing.
type RFPPage struct {
	Items       []*domain.RFP
	Total       int
	Pages       int
	CurrentPage int
}

// RFPRepositoryInterface defines the repository interface for RFP persistence
type RFPRepositoryInterface interface {
	Create(ctx context.Context, r *domain.RFP) error
	GetByID(ctx context.Context, id int) (*domain.RFP, error)
	List(ctx context.Context, filter ListRFPsFilter) (*RFPPage, error)
	ListAll(ctx context.Context) ([]*domain.RFP, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.RFP, error)
	ListPendingAnalysis(ctx context.Context) ([]*domain.RFP, error)
	Update(ctx context.Context, r *domain.RFP) error
	Delete(ctx context.Context, id int) error
}

// EmailRepositoryInterface defines the repository interface for the
// import mailbox
type EmailRepositoryInterface interface {
	List(ctx context.Context) ([]*domain.EmailRFP, error)
	GetByID(ctx context.Context, id int) (*domain.EmailRFP, error)
	MarkProcessed(ctx context.Context, id int) error
}

// Clock returns the current time; injectable for testing.
type Clock func() time.Time

// DefaultClock returns the current UTC time.
func DefaultClock() time.Time {
	return time.Now().UTC()
}

// RFPService handles business logic for RFPs, including the workflow
// stage documents and the mailbox import flow.
type RFPService struct {
	rfpRepo   RFPRepositoryInterface
	emailRepo EmailRepositoryInterface
	stages    workflow.StageGenerator
	clock     Clock
}

// NewRFPService creates a new RFPService instance
func NewRFPService(rfpRepo RFPRepositoryInterface, emailRepo EmailRepositoryInterface, stages workflow.StageGenerator) *RFPService {
	return &RFPService{
		rfpRepo:   rfpRepo,
		emailRepo: emailRepo,
		stages:    stages,
		clock:     DefaultClock,
	}
}

// NewRFPServiceWithClock creates a new RFPService with a custom clock (for testing)
func NewRFPServiceWithClock(rfpRepo RFPRepositoryInterface, emailRepo EmailRepositoryInterface, stages workflow.StageGenerator, clock Clock) *RFPService {
	return &RFPService{
		rfpRepo:   rfpRepo,
		emailRepo: emailRepo,
		stages:    stages,
		clock:     clock,
	}
}

// CreateRFPInput represents the input for creating an RFP
type CreateRFPInput struct {
	Name                 string
	AgencyName           string
	AdvertiserClientName string
	CampaignType         string
	BudgetRange          string
	DueDate              string
	Status               string
	CompletionPercentage int
	Content              string
	AIProcessingEnabled  *bool
	TeamMemberIDs        []int
}

// UpdateRFPInput represents a partial update. Nil fields are left
// unchanged; this is the explicit mutable-field whitelist.
type UpdateRFPInput struct {
	ID                   int
	Name                 *string
	AgencyName           *string
	AdvertiserClientName *string
	CampaignType         *string
	BudgetRange          *string
	DueDate              *string
	Status               *string
	CompletionPercentage *int
	Content              *string
	AIProcessingEnabled  *bool
	TeamMemberIDs        *[]int
}

// Create creates a new RFP
func (s *RFPService) Create(ctx context.Context, input CreateRFPInput) (*domain.RFP, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.Create", telemetry.SpanAttributes{
		Operation: "create",
	})
	defer span.End()

	dueDate, err := time.Parse(domain.DueDateFormat, input.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidDueDate
	}

	status := domain.RFPStatusNew
	if input.Status != "" {
		status = domain.RFPStatus(input.Status)
		if !domain.IsValidRFPStatus(status) {
			return nil, domain.ErrInvalidRFPStatus
		}
	}

	aiEnabled := true
	if input.AIProcessingEnabled != nil {
		aiEnabled = *input.AIProcessingEnabled
	}

	now := s.clock()
	rfp := &domain.RFP{
		Name:                 input.Name,
		AgencyName:           input.AgencyName,
		AdvertiserClientName: input.AdvertiserClientName,
		CampaignType:         input.CampaignType,
		BudgetRange:          input.BudgetRange,
		DueDate:              dueDate,
		Status:               status,
		CompletionPercentage: input.CompletionPercentage,
		Content:              input.Content,
		AIProcessingEnabled:  aiEnabled,
		TeamMemberIDs:        input.TeamMemberIDs,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := domain.ValidateRFP(rfp); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid rfp", err)
	}

	if err := s.rfpRepo.Create(ctx, rfp); err != nil {
		return nil, err
	}

	return rfp, nil
}

// GetByID retrieves an RFP by ID
func (s *RFPService) GetByID(ctx context.Context, id int) (*domain.RFP, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.GetByID", telemetry.SpanAttributes{
		RFPID:     id,
		Operation: "get",
	})
	defer span.End()

	return s.rfpRepo.GetByID(ctx, id)
}

// List retrieves a filtered, paginated RFP listing ordered by
// updated_at descending.
func (s *RFPService) List(ctx context.Context, filter ListRFPsFilter) (*RFPPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.List", telemetry.SpanAttributes{
		Operation: "list",
	})
	defer span.End()

	return s.rfpRepo.List(ctx, filter)
}

// Update applies a partial update and bumps updated_at
func (s *RFPService) Update(ctx context.Context, input UpdateRFPInput) (*domain.RFP, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.Update", telemetry.SpanAttributes{
		RFPID:     input.ID,
		Operation: "update",
	})
	defer span.End()

	rfp, err := s.rfpRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		rfp.Name = *input.Name
	}
	if input.AgencyName != nil {
		rfp.AgencyName = *input.AgencyName
	}
	if input.AdvertiserClientName != nil {
		rfp.AdvertiserClientName = *input.AdvertiserClientName
	}
	if input.CampaignType != nil {
		rfp.CampaignType = *input.CampaignType
	}
	if input.BudgetRange != nil {
		rfp.BudgetRange = *input.BudgetRange
	}
	if input.DueDate != nil {
		dueDate, err := time.Parse(domain.DueDateFormat, *input.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidDueDate
		}
		rfp.DueDate = dueDate
	}
	if input.Status != nil {
		status := domain.RFPStatus(*input.Status)
		if !domain.IsValidRFPStatus(status) {
			return nil, domain.ErrInvalidRFPStatus
		}
		rfp.Status = status
	}
	if input.CompletionPercentage != nil {
		rfp.CompletionPercentage = *input.CompletionPercentage
	}
	if input.Content != nil {
		rfp.Content = *input.Content
	}
	if input.AIProcessingEnabled != nil {
		rfp.AIProcessingEnabled = *input.AIProcessingEnabled
	}
	if input.TeamMemberIDs != nil {
		rfp.TeamMemberIDs = *input.TeamMemberIDs
	}

	rfp.UpdatedAt = s.clock()

	if err := domain.ValidateRFP(rfp); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid rfp", err)
	}

	if err := s.rfpRepo.Update(ctx, rfp); err != nil {
		return nil, err
	}

	return rfp, nil
}

// Delete removes an RFP and its owned attachments
func (s *RFPService) Delete(ctx context.Context, id int) error {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.Delete", telemetry.SpanAttributes{
		RFPID:     id,
		Operation: "delete",
	})
	defer span.End()

	return s.rfpRepo.Delete(ctx, id)
}

// Analyze generates and attaches the analysis document
func (s *RFPService) Analyze(ctx context.Context, id int) (*domain.Analysis, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.Analyze", telemetry.SpanAttributes{
		RFPID:     id,
		Operation: "analyze",
	})
	defer span.End()

	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis, err := s.stages.Analyze(ctx, rfp)
	if err != nil {
		return nil, err
	}

	rfp.Analysis = analysis
	rfp.UpdatedAt = s.clock()
	if err := s.rfpRepo.Update(ctx, rfp); err != nil {
		return nil, err
	}

	return analysis, nil
}

// ExtractPlacements extracts the RFP's media placement breakdown. The
// result is returned to the caller and not stored on the RFP.
func (s *RFPService) ExtractPlacements(ctx context.Context, id int) ([]domain.MediaPlacement, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.ExtractPlacements", telemetry.SpanAttributes{
		RFPID:     id,
		Operation: "extract-placements",
	})
	defer span.End()

	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.stages.ExtractPlacements(ctx, rfp)
}

// GenerateProposal generates and attaches the proposal document,
// running the analysis stage first when it is missing.
func (s *RFPService) GenerateProposal(ctx context.Context, id int) (*domain.Proposal, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.GenerateProposal", telemetry.SpanAttributes{
		RFPID:     id,
		Operation: "generate-proposal",
	})
	defer span.End()

	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rfp.Analysis == nil {
		analysis, err := s.stages.Analyze(ctx, rfp)
		if err != nil {
			return nil, err
		}
		rfp.Analysis = analysis
	}

	proposal, err := s.stages.GenerateProposal(ctx, rfp)
	if err != nil {
		return nil, err
	}

	rfp.Proposal = proposal
	rfp.UpdatedAt = s.clock()
	if err := s.rfpRepo.Update(ctx, rfp); err != nil {
		return nil, err
	}

	return proposal, nil
}

// QualityCheck generates and attaches the quality-check document.
// Fails with a precondition error when no proposal exists yet.
func (s *RFPService) QualityCheck(ctx context.Context, id int) (*domain.QualityCheck, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.QualityCheck", telemetry.SpanAttributes{
		RFPID:     id,
		Operation: "quality-check",
	})
	defer span.End()

	rfp, err := s.rfpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rfp.Proposal == nil {
		return nil, domain.ErrProposalRequired
	}

	check, err := s.stages.QualityCheck(ctx, rfp)
	if err != nil {
		return nil, err
	}

	rfp.QualityCheck = check
	rfp.UpdatedAt = s.clock()
	if err := s.rfpRepo.Update(ctx, rfp); err != nil {
		return nil, err
	}

	return check, nil
}

// ImportRFPInput represents the input for importing an RFP from the
// mailbox. Explicit fields override email-derived defaults.
type ImportRFPInput struct {
	Method               string
	EmailID              int
	Name                 string
	AgencyName           string
	AdvertiserClientName string
	CampaignType         string
	BudgetRange          string
	DueDate              string
	AIProcessingEnabled  *bool
	TeamMemberIDs        []int
}

// ImportMethodEmail is the only supported import method
const ImportMethodEmail = "email"

// ListEmails lists the import mailbox
func (s *RFPService) ListEmails(ctx context.Context) ([]*domain.EmailRFP, error) {
	return s.emailRepo.List(ctx)
}

// Import creates an RFP from a mailbox email and marks the email
// processed
func (s *RFPService) Import(ctx context.Context, input ImportRFPInput) (*domain.RFP, error) {
	ctx, span := telemetry.StartSpan(ctx, "RFPService.Import", telemetry.SpanAttributes{
		Operation: "import",
	})
	defer span.End()

	method := input.Method
	if method == "" {
		method = ImportMethodEmail
	}
	if method != ImportMethodEmail {
		return nil, domain.ErrUnsupportedImport
	}

	email, err := s.emailRepo.GetByID(ctx, input.EmailID)
	if err != nil {
		return nil, err
	}

	createInput := CreateRFPInput{
		Name:                 input.Name,
		AgencyName:           input.AgencyName,
		AdvertiserClientName: input.AdvertiserClientName,
		CampaignType:         input.CampaignType,
		BudgetRange:          input.BudgetRange,
		DueDate:              input.DueDate,
		Status:               string(domain.RFPStatusNew),
		AIProcessingEnabled:  input.AIProcessingEnabled,
		TeamMemberIDs:        input.TeamMemberIDs,
	}
	if createInput.Name == "" {
		createInput.Name = importNameFromSubject(email.Subject)
	}
	if createInput.AgencyName == "" {
		createInput.AgencyName = email.Sender
	}
	if createInput.CampaignType == "" {
		createInput.CampaignType = "Digital Media"
	}
	if createInput.BudgetRange == "" {
		createInput.BudgetRange = "$100K - $500K"
	}
	if createInput.DueDate == "" {
		createInput.DueDate = s.clock().AddDate(0, 0, 30).Format(domain.DueDateFormat)
	}

	rfp, err := s.Create(ctx, createInput)
	if err != nil {
		return nil, err
	}

	// Carry the email's attachments over as RFP attachment metadata
	now := s.clock()
	for i, att := range email.Attachments {
		rfp.Attachments = append(rfp.Attachments, domain.Attachment{
			ID:         i + 1,
			Filename:   att.Filename,
			Type:       att.Type,
			UploadedAt: now,
		})
	}
	if len(rfp.Attachments) > 0 {
		if err := s.rfpRepo.Update(ctx, rfp); err != nil {
			return nil, err
		}
	}

	if err := s.emailRepo.MarkProcessed(ctx, email.ID); err != nil {
		return nil, err
	}

	return rfp, nil
}

// importNameFromSubject strips mailbox decoration like a trailing
// " RFP (2 attachments)" from an email subject.
func importNameFromSubject(subject string) string {
	name := subject
	for _, prefix := range []string{"Fwd: ", "FW: ", "Re: ", "RE: "} {
		name = strings.TrimPrefix(name, prefix)
	}
	if idx := strings.LastIndex(name, " ("); idx > 0 {
		name = name[:idx]
	}
	if idx := strings.Index(name, " - "); idx > 0 {
		name = name[idx+3:]
	}
	name = strings.TrimSuffix(name, " RFP")
	if name == "" {
		return subject
	}
	return name
}
