package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
)

type Repository struct {
	pool repository.PgxPool
}

func NewRepository(pool repository.PgxPool) *Repository {
	return &Repository{pool: pool}
}

// AggregateSession totals the observations recorded for a session. Reasons
// in the FILTER clauses mirror the observation reason values.
func (r *Repository) AggregateSession(ctx context.Context, sessionID uuid.UUID) (*ObservationTotals, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE attention) AS attentive,
			COUNT(*) FILTER (WHERE reason = 'looking_up') AS looking_up,
			COUNT(*) FILTER (WHERE reason = 'looking_down') AS looking_down,
			COUNT(*) FILTER (WHERE reason = 'looking_left') AS looking_left,
			COUNT(*) FILTER (WHERE reason = 'looking_right') AS looking_right,
			COUNT(*) FILTER (WHERE reason = 'no_face') AS no_face
		FROM observations
		WHERE session_id = $1
	`

	var totals ObservationTotals
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&totals.Total,
		&totals.Attentive,
		&totals.Breakdown.LookingUp,
		&totals.Breakdown.LookingDown,
		&totals.Breakdown.LookingLeft,
		&totals.Breakdown.LookingRight,
		&totals.Breakdown.NoFace,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate session %s: %w", sessionID, err)
	}

	return &totals, nil
}
