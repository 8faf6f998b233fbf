package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session status values
const (
	SessionActive = "active"
	SessionClosed = "closed"
)

// ExamSession representa uma prova monitorada de um aluno. Observations
// recorded while the session is active are attached to it.
type ExamSession struct {
	ID        uuid.UUID  `json:"id"`
	ExamID    string     `json:"exam_id"`
	StudentID string     `json:"student_id"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsActive reports whether the session still accepts observations.
func (s *ExamSession) IsActive() bool {
	return s.Status == SessionActive
}

// Validate verifica os campos obrigatórios da sessão
func (s *ExamSession) Validate() error {
	if s.ExamID == "" {
		return errors.New("exam_id cannot be empty")
	}

	if s.StudentID == "" {
		return errors.New("student_id cannot be empty")
	}

	if s.Status != SessionActive && s.Status != SessionClosed {
		return errors.New("invalid status")
	}

	return nil
}
