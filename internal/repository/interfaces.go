package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// PgxPool is the subset of *pgxpool.Pool the repositories depend on.
// Declared locally so tests can substitute pgxmock.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SessionRepositoryInterface defines operations for exam session data access
type SessionRepositoryInterface interface {
	Create(ctx context.Context, session *domain.ExamSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error)
	Close(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error)
	ListActive(ctx context.Context) ([]domain.ExamSession, error)
}

// ObservationRepositoryInterface defines operations for observation data access
type ObservationRepositoryInterface interface {
	Create(ctx context.Context, obs *domain.Observation) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.Observation, error)
}

// APIKeyRepositoryInterface defines operations for API key data access
type APIKeyRepositoryInterface interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByHash(ctx context.Context, hash string) (*domain.APIKey, error)
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
	Revoke(ctx context.Context, id uuid.UUID) error
}

// AlertEventRepositoryInterface defines operations for persisted alerts
type AlertEventRepositoryInterface interface {
	Create(ctx context.Context, event *domain.AlertEvent) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.AlertEvent, error)
}
