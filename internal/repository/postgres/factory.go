package postgres

import (
	repo "github.com/mintyscan/mintyscan-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Mints     repo.Mints
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Mints:     &mintsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
