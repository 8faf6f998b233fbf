package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/stats"
)

// SessionService defines the contract for exam session operations
type SessionService interface {
	Create(ctx context.Context, examID, studentID string) (*domain.ExamSession, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error)
	ListActive(ctx context.Context) ([]domain.ExamSession, error)
	Close(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error)
	Report(ctx context.Context, id uuid.UUID) (*stats.SessionReport, error)
	MonitorToken(ctx context.Context, id uuid.UUID) (string, time.Time, error)
}

// CreateSessionRequest is the JSON body for session creation
type CreateSessionRequest struct {
	ExamID    string `json:"exam_id"`
	StudentID string `json:"student_id"`
}

// ListSessionsResponse wraps the active sessions
type ListSessionsResponse struct {
	Sessions []domain.ExamSession `json:"sessions"`
}

// MonitorTokenResponse carries a short-lived monitor credential
type MonitorTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionHandler handles exam session HTTP requests
type SessionHandler struct {
	service SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	// 1. Parse request body
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	// 2. Create the session
	session, err := h.service.Create(c.Context(), req.ExamID, req.StudentID)
	if err != nil {
		return err
	}

	// 3. Return the session
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Get handles GET /v1/sessions/:id
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// List handles GET /v1/sessions
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.service.ListActive(c.Context())
	if err != nil {
		return err
	}

	if sessions == nil {
		sessions = []domain.ExamSession{}
	}

	return c.JSON(ListSessionsResponse{Sessions: sessions})
}

// Close handles POST /v1/sessions/:id/close
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.service.Close(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// Report handles GET /v1/sessions/:id/report
func (h *SessionHandler) Report(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	report, err := h.service.Report(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// MonitorToken handles POST /v1/sessions/:id/monitor-token
func (h *SessionHandler) MonitorToken(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	token, expiresAt, err := h.service.MonitorToken(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(MonitorTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// parseSessionID extracts and validates the :id path parameter
func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(err)
	}
	return id, nil
}
