package repository

import (
	"context"

	"github.com/mintyscan/mintyscan-backend/internal/models"
)

type Mints interface {
	// Create appends one record; the ledger is append-only.
	Create(ctx context.Context, m models.MintRecord) (models.MintRecord, error)
	// List returns every record in insertion order.
	List(ctx context.Context) ([]models.MintRecord, error)
	// DeleteAll removes every record in a single statement.
	DeleteAll(ctx context.Context) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
