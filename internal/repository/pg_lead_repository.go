package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janmalik2800/Antigravity-web/internal/model"
)

// PgLeadRepository is the PostgreSQL implementation of LeadStore.
type PgLeadRepository struct {
	pool *pgxpool.Pool
}

// NewPgLeadRepository creates a PgLeadRepository backed by the given pool.
func NewPgLeadRepository(pool *pgxpool.Pool) *PgLeadRepository {
	return &PgLeadRepository{pool: pool}
}

var _ LeadStore = (*PgLeadRepository)(nil)

// Insert adds one leads row and fills lead.CreatedAt from the database.
// Empty optional fields and an unset consent flag are stored as NULL.
func (r *PgLeadRepository) Insert(ctx context.Context, lead *model.Lead) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO leads (id, name, clinic, email, phone, practice, message, marketing, gdpr)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)
		 RETURNING created_at`,
		lead.ID, lead.Name, lead.Clinic, lead.Email, lead.Phone, lead.Practice, lead.Message, lead.Marketing, lead.GDPR,
	).Scan(&lead.CreatedAt)
}
