package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adresponse/adresponse/internal/api"
	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/service"
)

type RFPService interface {
	Create(ctx context.Context, input service.CreateRFPInput) (*domain.RFP, error)
	GetByID(ctx context.Context, id int) (*domain.RFP, error)
	List(ctx context.Context, filter service.ListRFPsFilter) (*service.RFPPage, error)
	Update(ctx context.Context, input service.UpdateRFPInput) (*domain.RFP, error)
	Delete(ctx context.Context, id int) error
	Analyze(ctx context.Context, id int) (*domain.Analysis, error)
	ExtractPlacements(ctx context.Context, id int) ([]domain.MediaPlacement, error)
	GenerateProposal(ctx context.Context, id int) (*domain.Proposal, error)
	QualityCheck(ctx context.Context, id int) (*domain.QualityCheck, error)
	Import(ctx context.Context, input service.ImportRFPInput) (*domain.RFP, error)
	ListEmails(ctx context.Context) ([]*domain.EmailRFP, error)
}

type AttachmentService interface {
	AddAttachment(ctx context.Context, input service.AddAttachmentInput) (*service.AddAttachmentResult, error)
	DownloadURL(ctx context.Context, rfpID, attachmentID int) (string, error)
}

type RFPHandler struct {
	svc         RFPService
	attachments AttachmentService
}

func NewRFPHandler(svc RFPService, attachments AttachmentService) *RFPHandler {
	return &RFPHandler{svc: svc, attachments: attachments}
}

type CreateRFPRequest struct {
	Name                 string `json:"name"`
	AgencyName           string `json:"agency_name"`
	AdvertiserClientName string `json:"advertiser_client_name"`
	CampaignType         string `json:"campaign_type"`
	BudgetRange          string `json:"budget_range"`
	DueDate              string `json:"due_date"`
	Status               string `json:"status"`
	CompletionPercentage int    `json:"completion_percentage"`
	Content              string `json:"content"`
	AIProcessingEnabled  *bool  `json:"ai_processing_enabled"`
	TeamMemberIDs        []int  `json:"team_member_ids"`
}

// UpdateRFPRequest is the mutable-field whitelist. Unknown body fields
// are ignored; absent fields are left unchanged.
type UpdateRFPRequest struct {
	Name                 *string `json:"name"`
	AgencyName           *string `json:"agency_name"`
	AdvertiserClientName *string `json:"advertiser_client_name"`
	CampaignType         *string `json:"campaign_type"`
	BudgetRange          *string `json:"budget_range"`
	DueDate              *string `json:"due_date"`
	Status               *string `json:"status"`
	CompletionPercentage *int    `json:"completion_percentage"`
	Content              *string `json:"content"`
	AIProcessingEnabled  *bool   `json:"ai_processing_enabled"`
	TeamMemberIDs        *[]int  `json:"team_member_ids"`
}

type ImportRFPRequest struct {
	Method               string `json:"method"`
	EmailID              int    `json:"email_id"`
	Name                 string `json:"name"`
	AgencyName           string `json:"agency_name"`
	AdvertiserClientName string `json:"advertiser_client_name"`
	CampaignType         string `json:"campaign_type"`
	BudgetRange          string `json:"budget_range"`
	DueDate              string `json:"due_date"`
	AIProcessingEnabled  *bool  `json:"ai_processing_enabled"`
	TeamMemberIDs        []int  `json:"team_member_ids"`
}

type AttachmentResponse struct {
	ID         int    `json:"id"`
	Filename   string `json:"filename"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

type RFPResponse struct {
	ID                   int                  `json:"id"`
	Name                 string               `json:"name"`
	AgencyName           string               `json:"agency_name"`
	AdvertiserClientName string               `json:"advertiser_client_name"`
	CampaignType         string               `json:"campaign_type"`
	BudgetRange          string               `json:"budget_range"`
	DueDate              string               `json:"due_date"`
	Status               string               `json:"status"`
	CompletionPercentage int                  `json:"completion_percentage"`
	Content              string               `json:"content"`
	AIProcessingEnabled  bool                 `json:"ai_processing_enabled"`
	TeamMemberIDs        []int                `json:"team_member_ids"`
	Attachments          []AttachmentResponse `json:"attachments"`
	Analysis             *domain.Analysis     `json:"analysis,omitempty"`
	Proposal             *domain.Proposal     `json:"proposal,omitempty"`
	QualityCheck         *domain.QualityCheck `json:"quality_check,omitempty"`
	CreatedAt            string               `json:"created_at"`
	UpdatedAt            string               `json:"updated_at"`
}

const timestampFormat = "2006-01-02T15:04:05Z"

func rfpToResponse(r *domain.RFP) *RFPResponse {
	teamIDs := r.TeamMemberIDs
	if teamIDs == nil {
		teamIDs = []int{}
	}

	attachments := make([]AttachmentResponse, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = AttachmentResponse{
			ID:         a.ID,
			Filename:   a.Filename,
			Type:       a.Type,
			Size:       a.Size,
			UploadedAt: a.UploadedAt.UTC().Format(timestampFormat),
		}
	}

	return &RFPResponse{
		ID:                   r.ID,
		Name:                 r.Name,
		AgencyName:           r.AgencyName,
		AdvertiserClientName: r.AdvertiserClientName,
		CampaignType:         r.CampaignType,
		BudgetRange:          r.BudgetRange,
		DueDate:              r.DueDate.Format(domain.DueDateFormat),
		Status:               string(r.Status),
		CompletionPercentage: r.CompletionPercentage,
		Content:              r.Content,
		AIProcessingEnabled:  r.AIProcessingEnabled,
		TeamMemberIDs:        teamIDs,
		Attachments:          attachments,
		Analysis:             r.Analysis,
		Proposal:             r.Proposal,
		QualityCheck:         r.QualityCheck,
		CreatedAt:            r.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt:            r.UpdatedAt.UTC().Format(timestampFormat),
	}
}

func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *RFPHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := service.ListRFPsFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		filter.PerPage = perPage
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	rfps := make([]*RFPResponse, len(page.Items))
	for i, rfp := range page.Items {
		rfps[i] = rfpToResponse(rfp)
	}

	api.Success(w, http.StatusOK, api.Payload{
		"rfps":         rfps,
		"total":        page.Total,
		"pages":        page.Pages,
		"current_page": page.CurrentPage,
	})
}

func (h *RFPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	rfp, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"rfp": rfpToResponse(rfp)})
}

func (h *RFPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRFPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rfp, err := h.svc.Create(r.Context(), service.CreateRFPInput{
		Name:                 req.Name,
		AgencyName:           req.AgencyName,
		AdvertiserClientName: req.AdvertiserClientName,
		CampaignType:         req.CampaignType,
		BudgetRange:          req.BudgetRange,
		DueDate:              req.DueDate,
		Status:               req.Status,
		CompletionPercentage: req.CompletionPercentage,
		Content:              req.Content,
		AIProcessingEnabled:  req.AIProcessingEnabled,
		TeamMemberIDs:        req.TeamMemberIDs,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, api.Payload{"rfp": rfpToResponse(rfp)})
}

func (h *RFPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	var req UpdateRFPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rfp, err := h.svc.Update(r.Context(), service.UpdateRFPInput{
		ID:                   id,
		Name:                 req.Name,
		AgencyName:           req.AgencyName,
		AdvertiserClientName: req.AdvertiserClientName,
		CampaignType:         req.CampaignType,
		BudgetRange:          req.BudgetRange,
		DueDate:              req.DueDate,
		Status:               req.Status,
		CompletionPercentage: req.CompletionPercentage,
		Content:              req.Content,
		AIProcessingEnabled:  req.AIProcessingEnabled,
		TeamMemberIDs:        req.TeamMemberIDs,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"rfp": rfpToResponse(rfp)})
}

func (h *RFPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"message": "rfp deleted"})
}

func (h *RFPHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	analysis, err := h.svc.Analyze(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"analysis": analysis})
}

func (h *RFPHandler) ExtractPlacements(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	placements, err := h.svc.ExtractPlacements(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"placements": placements})
}

func (h *RFPHandler) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	proposal, err := h.svc.GenerateProposal(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"proposal": proposal})
}

func (h *RFPHandler) QualityCheck(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	check, err := h.svc.QualityCheck(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"quality_check": check})
}

func (h *RFPHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRFPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rfp, err := h.svc.Import(r.Context(), service.ImportRFPInput{
		Method:               req.Method,
		EmailID:              req.EmailID,
		Name:                 req.Name,
		AgencyName:           req.AgencyName,
		AdvertiserClientName: req.AdvertiserClientName,
		CampaignType:         req.CampaignType,
		BudgetRange:          req.BudgetRange,
		DueDate:              req.DueDate,
		AIProcessingEnabled:  req.AIProcessingEnabled,
		TeamMemberIDs:        req.TeamMemberIDs,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, api.Payload{"rfp": rfpToResponse(rfp)})
}

type EmailResponse struct {
	ID           int                      `json:"id"`
	Subject      string                   `json:"subject"`
	Sender       string                   `json:"sender"`
	ReceivedDate string                   `json:"received_date"`
	Attachments  []domain.EmailAttachment `json:"attachments"`
	Processed    bool                     `json:"processed"`
}

func (h *RFPHandler) ListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.svc.ListEmails(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	responses := make([]*EmailResponse, len(emails))
	for i, e := range emails {
		attachments := e.Attachments
		if attachments == nil {
			attachments = []domain.EmailAttachment{}
		}
		responses[i] = &EmailResponse{
			ID:           e.ID,
			Subject:      e.Subject,
			Sender:       e.Sender,
			ReceivedDate: e.ReceivedDate.UTC().Format(timestampFormat),
			Attachments:  attachments,
			Processed:    e.Processed,
		}
	}

	api.Success(w, http.StatusOK, api.Payload{"emails": responses})
}

type AddAttachmentRequest struct {
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Size        string `json:"size"`
	ContentType string `json:"content_type"`
}

func (h *RFPHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}

	var req AddAttachmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.attachments.AddAttachment(r.Context(), service.AddAttachmentInput{
		RFPID:       id,
		Filename:    req.Filename,
		Type:        req.Type,
		Size:        req.Size,
		ContentType: req.ContentType,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, api.Payload{
		"attachment": AttachmentResponse{
			ID:         result.Attachment.ID,
			Filename:   result.Attachment.Filename,
			Type:       result.Attachment.Type,
			Size:       result.Attachment.Size,
			UploadedAt: result.Attachment.UploadedAt.UTC().Format(timestampFormat),
		},
		"upload_url": result.UploadURL,
	})
}

func (h *RFPHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid rfp id")
		return
	}
	attachmentID, ok := urlID(r, "attachment_id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid attachment id")
		return
	}

	url, err := h.attachments.DownloadURL(r.Context(), id, attachmentID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"download_url": url})
}
