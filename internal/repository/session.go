package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type SessionRepository struct {
	pool PgxPool
}

func NewSessionRepository(pool PgxPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create registra uma nova sessão de prova
func (r *SessionRepository) Create(ctx context.Context, session *domain.ExamSession) error {
	query := `
		INSERT INTO exam_sessions (id, exam_id, student_id, status, started_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW(), NOW())
		RETURNING started_at, created_at, updated_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = domain.SessionActive
	}

	err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.ExamID,
		session.StudentID,
		session.Status,
	).Scan(&session.StartedAt, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return &domain.AppError{
				Code:       "SESSION_ALREADY_EXISTS",
				Message:    "Session with this ID already exists",
				StatusCode: 409,
			}
		}
		return fmt.Errorf("create exam session: %w", err)
	}

	return nil
}

// GetByID retrieves an exam session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error) {
	query := `
		SELECT id, exam_id, student_id, status, started_at, closed_at, created_at, updated_at
		FROM exam_sessions
		WHERE id = $1
	`

	var session domain.ExamSession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ExamID,
		&session.StudentID,
		&session.Status,
		&session.StartedAt,
		&session.ClosedAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get exam session by id: %w", err)
	}

	return &session, nil
}

// Close marca a sessão como encerrada. Retorna ErrSessionClosed se ela já
// estava encerrada.
func (r *SessionRepository) Close(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error) {
	query := `
		UPDATE exam_sessions
		SET status = $2, closed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING id, exam_id, student_id, status, started_at, closed_at, created_at, updated_at
	`

	var session domain.ExamSession
	err := r.pool.QueryRow(ctx, query, id, domain.SessionClosed, domain.SessionActive).Scan(
		&session.ID,
		&session.ExamID,
		&session.StudentID,
		&session.Status,
		&session.StartedAt,
		&session.ClosedAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing session from one already closed
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if !existing.IsActive() {
			return nil, domain.ErrSessionClosed
		}
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("close exam session: %w", err)
	}

	return &session, nil
}

// ListActive returns all sessions currently under proctoring
func (r *SessionRepository) ListActive(ctx context.Context) ([]domain.ExamSession, error) {
	query := `
		SELECT id, exam_id, student_id, status, started_at, closed_at, created_at, updated_at
		FROM exam_sessions
		WHERE status = $1
		ORDER BY started_at DESC
	`

	rows, err := r.pool.Query(ctx, query, domain.SessionActive)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ExamSession
	for rows.Next() {
		var session domain.ExamSession
		err := rows.Scan(
			&session.ID,
			&session.ExamID,
			&session.StudentID,
			&session.Status,
			&session.StartedAt,
			&session.ClosedAt,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan exam session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sessions, nil
}
