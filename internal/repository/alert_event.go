package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type AlertEventRepository struct {
	pool PgxPool
}

func NewAlertEventRepository(pool PgxPool) *AlertEventRepository {
	return &AlertEventRepository{pool: pool}
}

// Create persiste um alerta disparado
func (r *AlertEventRepository) Create(ctx context.Context, event *domain.AlertEvent) error {
	query := `
		INSERT INTO alert_events (id, session_id, rule, severity, message, count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.SessionID,
		event.Rule,
		event.Severity,
		event.Message,
		event.Count,
	).Scan(&event.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("create alert event: %w", err)
	}

	return nil
}

// ListBySession returns all alerts fired for a session, oldest first
func (r *AlertEventRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.AlertEvent, error) {
	query := `
		SELECT id, session_id, rule, severity, message, count, created_at
		FROM alert_events
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list alert events by session: %w", err)
	}
	defer rows.Close()

	var events []domain.AlertEvent
	for rows.Next() {
		var event domain.AlertEvent
		err := rows.Scan(
			&event.ID,
			&event.SessionID,
			&event.Rule,
			&event.Severity,
			&event.Message,
			&event.Count,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan alert event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return events, nil
}
