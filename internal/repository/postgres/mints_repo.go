package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mintyscan/mintyscan-backend/internal/models"
)

type mintsRepo struct{ pool *pgxpool.Pool }

func (r *mintsRepo) Create(ctx context.Context, m models.MintRecord) (models.MintRecord, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `
INSERT INTO mints (id, user_id, recipient, amount)
VALUES ($1,$2,$3,$4)
RETURNING id, user_id, recipient, amount, created_at;
`
	err := r.pool.QueryRow(ctx, q, m.ID, m.UserID, m.Recipient, m.Amount).
		Scan(&m.ID, &m.UserID, &m.Recipient, &m.Amount, &m.CreatedAt)
	return m, err
}

func (r *mintsRepo) List(ctx context.Context) ([]models.MintRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, recipient, amount, created_at
		   FROM mints
		  ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MintRecord
	for rows.Next() {
		var m models.MintRecord
		if err := rows.Scan(&m.ID, &m.UserID, &m.Recipient, &m.Amount, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *mintsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mints`)
	return err
}
