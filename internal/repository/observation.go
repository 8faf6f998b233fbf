package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type ObservationRepository struct {
	pool PgxPool
}

func NewObservationRepository(pool PgxPool) *ObservationRepository {
	return &ObservationRepository{pool: pool}
}

// Create persiste uma observação de frame analisado
func (r *ObservationRepository) Create(ctx context.Context, obs *domain.Observation) error {
	query := `
		INSERT INTO observations (id, session_id, status, attention, reason, severity, pitch, yaw, roll, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	if obs.ID == uuid.Nil {
		obs.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		obs.ID,
		obs.SessionID,
		obs.Status,
		obs.Attention,
		obs.Reason,
		obs.Severity,
		obs.Pitch,
		obs.Yaw,
		obs.Roll,
	).Scan(&obs.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("create observation: %w", err)
	}

	return nil
}

// ListBySession returns the most recent observations for a session,
// newest first
func (r *ObservationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.Observation, error) {
	query := `
		SELECT id, session_id, status, attention, reason, severity, pitch, yaw, roll, created_at
		FROM observations
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list observations by session: %w", err)
	}
	defer rows.Close()

	var observations []domain.Observation
	for rows.Next() {
		var obs domain.Observation
		err := rows.Scan(
			&obs.ID,
			&obs.SessionID,
			&obs.Status,
			&obs.Attention,
			&obs.Reason,
			&obs.Severity,
			&obs.Pitch,
			&obs.Yaw,
			&obs.Roll,
			&obs.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		observations = append(observations, obs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return observations, nil
}
