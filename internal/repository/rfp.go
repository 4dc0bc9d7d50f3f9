package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/query"
	"github.com/adresponse/adresponse/internal/service"
)

// RFPRepository is the Postgres-backed RFP repository. Workflow stage
// documents and attachment metadata live in jsonb columns; everything
// queryable is a plain column.
type RFPRepository struct {
	pool *pgxpool.Pool
}

func NewRFPRepository(pool *pgxpool.Pool) *RFPRepository {
	return &RFPRepository{pool: pool}
}

// attachmentRecord is the jsonb shape of one attachment.
type attachmentRecord struct {
	ID         int       `json:"id"`
	Filename   string    `json:"filename"`
	Type       string    `json:"type"`
	Size       string    `json:"size"`
	StorageKey string    `json:"storage_key,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

const rfpColumns = `id, name, agency_name, advertiser_client_name, campaign_type,
	budget_range, due_date, status, completion_percentage, content,
	ai_processing_enabled, team_member_ids, attachments,
	analysis, proposal, quality_check, created_at, updated_at`

func (r *RFPRepository) Create(ctx context.Context, rfp *domain.RFP) error {
	attachments, err := marshalAttachments(rfp.Attachments)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO rfps (name, agency_name, advertiser_client_name, campaign_type,
			budget_range, due_date, status, completion_percentage, content,
			ai_processing_enabled, team_member_ids, attachments,
			analysis, proposal, quality_check, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		rfp.Name, rfp.AgencyName, rfp.AdvertiserClientName, rfp.CampaignType,
		rfp.BudgetRange, rfp.DueDate, string(rfp.Status), rfp.CompletionPercentage, rfp.Content,
		rfp.AIProcessingEnabled, teamIDsToInt32(rfp.TeamMemberIDs), attachments,
		rfp.Analysis, rfp.Proposal, rfp.QualityCheck, rfp.CreatedAt, rfp.UpdatedAt,
	).Scan(&rfp.ID)
}

func (r *RFPRepository) GetByID(ctx context.Context, id int) (*domain.RFP, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+rfpColumns+` FROM rfps WHERE id = $1`, id)

	rfp, err := scanRFP(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRFPNotFound
		}
		return nil, err
	}
	return rfp, nil
}

// List returns one page ordered by updated_at descending. Search is a
// case-insensitive substring match on name, agency and advertiser;
// the sentinel status value disables the status filter.
func (r *RFPRepository) List(ctx context.Context, filter service.ListRFPsFilter) (*service.RFPPage, error) {
	page := filter.Page
	if page <= 0 {
		page = query.DefaultPage
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = query.DefaultPerPage
	}

	where := `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%'
			OR agency_name ILIKE '%' || $1 || '%'
			OR advertiser_client_name ILIKE '%' || $1 || '%')
		AND ($2 = '' OR status = $2)`

	status := filter.Status
	if status == query.AllStatuses {
		status = ""
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM rfps `+where, filter.Search, status,
	).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+rfpColumns+` FROM rfps `+where+`
		ORDER BY updated_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		filter.Search, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectRFPs(rows)
	if err != nil {
		return nil, err
	}

	return &service.RFPPage{
		Items:       items,
		Total:       total,
		Pages:       (total + perPage - 1) / perPage,
		CurrentPage: page,
	}, nil
}

func (r *RFPRepository) ListAll(ctx context.Context) ([]*domain.RFP, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+rfpColumns+` FROM rfps ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRFPs(rows)
}

func (r *RFPRepository) ListRecent(ctx context.Context, limit int) ([]*domain.RFP, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+rfpColumns+` FROM rfps ORDER BY updated_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRFPs(rows)
}

func (r *RFPRepository) ListPendingAnalysis(ctx context.Context) ([]*domain.RFP, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+rfpColumns+` FROM rfps
		WHERE ai_processing_enabled AND analysis IS NULL
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRFPs(rows)
}

func (r *RFPRepository) Update(ctx context.Context, rfp *domain.RFP) error {
	attachments, err := marshalAttachments(rfp.Attachments)
	if err != nil {
		return err
	}

	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE rfps SET name = $1, agency_name = $2, advertiser_client_name = $3,
			campaign_type = $4, budget_range = $5, due_date = $6, status = $7,
			completion_percentage = $8, content = $9, ai_processing_enabled = $10,
			team_member_ids = $11, attachments = $12,
			analysis = $13, proposal = $14, quality_check = $15, updated_at = $16
		WHERE id = $17`,
		rfp.Name, rfp.AgencyName, rfp.AdvertiserClientName,
		rfp.CampaignType, rfp.BudgetRange, rfp.DueDate, string(rfp.Status),
		rfp.CompletionPercentage, rfp.Content, rfp.AIProcessingEnabled,
		teamIDsToInt32(rfp.TeamMemberIDs), attachments,
		rfp.Analysis, rfp.Proposal, rfp.QualityCheck, rfp.UpdatedAt,
		rfp.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrRFPNotFound
	}
	return nil
}

func (r *RFPRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM rfps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrRFPNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRFP(row rowScanner) (*domain.RFP, error) {
	var (
		rfp         domain.RFP
		status      string
		teamIDs     []int32
		attachments []byte
	)

	err := row.Scan(
		&rfp.ID, &rfp.Name, &rfp.AgencyName, &rfp.AdvertiserClientName, &rfp.CampaignType,
		&rfp.BudgetRange, &rfp.DueDate, &status, &rfp.CompletionPercentage, &rfp.Content,
		&rfp.AIProcessingEnabled, &teamIDs, &attachments,
		&rfp.Analysis, &rfp.Proposal, &rfp.QualityCheck, &rfp.CreatedAt, &rfp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rfp.Status = domain.RFPStatus(status)
	rfp.TeamMemberIDs = int32ToTeamIDs(teamIDs)

	if len(attachments) > 0 {
		var records []attachmentRecord
		if err := json.Unmarshal(attachments, &records); err != nil {
			return nil, fmt.Errorf("failed to decode attachments for rfp %d: %w", rfp.ID, err)
		}
		for _, rec := range records {
			rfp.Attachments = append(rfp.Attachments, domain.Attachment(rec))
		}
	}

	return &rfp, nil
}

func collectRFPs(rows pgx.Rows) ([]*domain.RFP, error) {
	var rfps []*domain.RFP
	for rows.Next() {
		rfp, err := scanRFP(rows)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, rfp)
	}
	return rfps, rows.Err()
}

func marshalAttachments(attachments []domain.Attachment) ([]byte, error) {
	records := make([]attachmentRecord, len(attachments))
	for i, a := range attachments {
		records[i] = attachmentRecord(a)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attachments: %w", err)
	}
	return data, nil
}

func teamIDsToInt32(ids []int) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}

func int32ToTeamIDs(ids []int32) []int {
	if ids == nil {
		return nil
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
