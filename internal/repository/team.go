package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adresponse/adresponse/internal/domain"
)

// TeamRepository is the Postgres-backed team member repository.
// Members come from seed data; the API only reads them.
type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

func (r *TeamRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO team_members (name, role, email) VALUES ($1, $2, $3) RETURNING id`,
		m.Name, m.Role, m.Email,
	).Scan(&m.ID)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int) (*domain.TeamMember, error) {
	var m domain.TeamMember
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, role, email FROM team_members WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Role, &m.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, role, email FROM team_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}
