package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adresponse/adresponse/internal/domain"
)

// EmailRepository is the Postgres-backed import mailbox. Emails are
// seed data; import only flips the processed flag.
type EmailRepository struct {
	pool *pgxpool.Pool
}

func NewEmailRepository(pool *pgxpool.Pool) *EmailRepository {
	return &EmailRepository{pool: pool}
}

func (r *EmailRepository) Create(ctx context.Context, e *domain.EmailRFP) error {
	attachments, err := json.Marshal(e.Attachments)
	if err != nil {
		return fmt.Errorf("failed to encode email attachments: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO email_rfps (subject, sender, received_date, attachments, processed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		e.Subject, e.Sender, e.ReceivedDate, attachments, e.Processed,
	).Scan(&e.ID)
}

func (r *EmailRepository) List(ctx context.Context) ([]*domain.EmailRFP, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject, sender, received_date, attachments, processed
		FROM email_rfps ORDER BY received_date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []*domain.EmailRFP
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func (r *EmailRepository) GetByID(ctx context.Context, id int) (*domain.EmailRFP, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, subject, sender, received_date, attachments, processed
		FROM email_rfps WHERE id = $1`, id)

	e, err := scanEmail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmailNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EmailRepository) MarkProcessed(ctx context.Context, id int) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE email_rfps SET processed = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrEmailNotFound
	}
	return nil
}

func scanEmail(row rowScanner) (*domain.EmailRFP, error) {
	var (
		e           domain.EmailRFP
		attachments []byte
	)
	err := row.Scan(&e.ID, &e.Subject, &e.Sender, &e.ReceivedDate, &attachments, &e.Processed)
	if err != nil {
		return nil, err
	}

	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &e.Attachments); err != nil {
			return nil, fmt.Errorf("failed to decode attachments for email %d: %w", e.ID, err)
		}
	}
	return &e, nil
}
