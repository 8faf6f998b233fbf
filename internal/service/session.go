package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/audit"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/stats"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

// ReportBuilder monta o relatório agregado de uma sessão.
type ReportBuilder interface {
	BuildSessionReport(ctx context.Context, sessionID uuid.UUID) (*stats.SessionReport, error)
}

// SessionForgetter descarta o estado de alertas de uma sessão encerrada.
type SessionForgetter interface {
	ForgetSession(sessionID uuid.UUID)
}

// SessionService gerencia o ciclo de vida das sessões de prova e emite os
// tokens de monitor que autorizam o stream ao vivo.
type SessionService struct {
	sessions    repository.SessionRepositoryInterface
	reports     ReportBuilder
	alerts      SessionForgetter
	hub         MonitorBroadcaster
	tokens      *ws.TokenService
	logger      *slog.Logger
	auditLogger audit.Logger
}

// SessionOption defines optional configuration for SessionService
type SessionOption func(*SessionService)

// WithSessionAudit sets the audit logger for session lifecycle operations
func WithSessionAudit(logger audit.Logger) SessionOption {
	return func(s *SessionService) {
		s.auditLogger = logger
	}
}

func NewSessionService(
	sessions repository.SessionRepositoryInterface,
	reports ReportBuilder,
	alerts SessionForgetter,
	hub MonitorBroadcaster,
	tokens *ws.TokenService,
	logger *slog.Logger,
	opts ...SessionOption,
) *SessionService {
	s := &SessionService{
		sessions: sessions,
		reports:  reports,
		alerts:   alerts,
		hub:      hub,
		tokens:   tokens,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create abre uma sessão ativa para um aluno em uma prova.
func (s *SessionService) Create(ctx context.Context, examID, studentID string) (*domain.ExamSession, error) {
	session := &domain.ExamSession{
		ExamID:    examID,
		StudentID: studentID,
		Status:    domain.SessionActive,
	}

	if err := session.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("exam session created",
		"session_id", session.ID,
		"exam_id", session.ExamID,
		"student_id", session.StudentID,
	)

	if s.auditLogger != nil {
		_ = s.auditLogger.Log(ctx, audit.Event{
			EventType: audit.EventSessionCreated,
			SessionID: session.ID.String(),
			ExamID:    session.ExamID,
			StudentID: session.StudentID,
			Success:   true,
		})
	}

	return session, nil
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// ListActive returns every session still accepting observations.
func (s *SessionService) ListActive(ctx context.Context) ([]domain.ExamSession, error) {
	return s.sessions.ListActive(ctx)
}

// Close encerra a sessão, descarta as janelas de alerta e avisa os monitores
// conectados. Fechar duas vezes devolve ErrSessionClosed.
func (s *SessionService) Close(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error) {
	session, err := s.sessions.Close(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.alerts != nil {
		s.alerts.ForgetSession(id)
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(id, ws.EventSessionClosed, session)
	}

	s.logger.Info("exam session closed", "session_id", id)

	if s.auditLogger != nil {
		_ = s.auditLogger.Log(ctx, audit.Event{
			EventType: audit.EventSessionClosed,
			SessionID: id.String(),
			StudentID: session.StudentID,
			Success:   true,
		})
	}

	return session, nil
}

// Report builds the aggregated attention report for a session.
func (s *SessionService) Report(ctx context.Context, id uuid.UUID) (*stats.SessionReport, error) {
	return s.reports.BuildSessionReport(ctx, id)
}

// MonitorToken emite um JWT de curta duração para acompanhar a sessão por
// websocket. Sessões encerradas não recebem token.
func (s *SessionService) MonitorToken(ctx context.Context, id uuid.UUID) (string, time.Time, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}

	if !session.IsActive() {
		return "", time.Time{}, domain.ErrSessionClosed
	}

	token, expiresAt, err := s.tokens.Generate(id)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate monitor token: %w", err)
	}

	return token, expiresAt, nil
}
