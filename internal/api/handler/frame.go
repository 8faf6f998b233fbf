package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// maxBatchFrames bounds one batch request; acima disso o cliente deveria
// estar usando os endpoints unitários de qualquer forma.
const maxBatchFrames = 50

// ProctorService defines the contract for frame analysis operations
type ProctorService interface {
	AnalyzePose(ctx context.Context, img string, sessionID *uuid.UUID) (*domain.FrameAnalysis, error)
	CheckAttention(ctx context.Context, img string, sessionID *uuid.UUID) (*domain.AttentionVerdict, error)
	CountPeople(ctx context.Context, img string) (int, error)
	AnalyzeBatch(ctx context.Context, items []domain.BatchFrame) []domain.BatchResult
	SaveSnapshot(img, user string) (string, error)
}

// FrameRequest is the JSON body shared by the single-frame endpoints.
// Img aceita base64 puro ou data URI; session_id é opcional e liga o frame
// a uma sessão de prova para observações e alertas.
type FrameRequest struct {
	Img       string     `json:"img"`
	SessionID *uuid.UUID `json:"session_id"`
}

// BatchRequest carries up to maxBatchFrames frames for parallel analysis
type BatchRequest struct {
	Frames []FrameRequest `json:"frames"`
}

// BatchItemError mirrors the error envelope, inline per frame
type BatchItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchItemResult holds one frame's outcome; exactly one field is set
type BatchItemResult struct {
	Analysis *domain.FrameAnalysis `json:"analysis,omitempty"`
	Error    *BatchItemError       `json:"error,omitempty"`
}

// BatchResponse preserves the input order of the frames
type BatchResponse struct {
	Results []BatchItemResult `json:"results"`
}

// PeopleResponse is the people counting result
type PeopleResponse struct {
	People int `json:"people"`
}

// SnapshotRequest is the JSON body for snapshot storage
type SnapshotRequest struct {
	Img  string `json:"img"`
	User string `json:"user"`
}

// SnapshotResponse returns where the snapshot was stored
type SnapshotResponse struct {
	Path string `json:"path"`
}

// FrameHandler handles frame analysis HTTP requests
type FrameHandler struct {
	service ProctorService
	logger  *slog.Logger
}

// NewFrameHandler creates a new frame handler
func NewFrameHandler(service ProctorService, logger *slog.Logger) *FrameHandler {
	return &FrameHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzePose handles POST /v1/frames/pose
func (h *FrameHandler) AnalyzePose(c *fiber.Ctx) error {
	// 1. Parse and validate request body
	req, err := parseFrameRequest(c)
	if err != nil {
		return err
	}

	// 2. Run the full analysis pipeline
	result, err := h.service.AnalyzePose(c.Context(), req.Img, req.SessionID)
	if err != nil {
		return err
	}

	// 3. Return the analysis payload
	return c.JSON(result)
}

// CheckAttention handles POST /v1/frames/attention
func (h *FrameHandler) CheckAttention(c *fiber.Ctx) error {
	// 1. Parse and validate request body
	req, err := parseFrameRequest(c)
	if err != nil {
		return err
	}

	// 2. Evaluate the attention policy
	verdict, err := h.service.CheckAttention(c.Context(), req.Img, req.SessionID)
	if err != nil {
		return err
	}

	// 3. Return the verdict
	return c.JSON(verdict)
}

// CountPeople handles POST /v1/frames/people
func (h *FrameHandler) CountPeople(c *fiber.Ctx) error {
	// 1. Parse and validate request body
	req, err := parseFrameRequest(c)
	if err != nil {
		return err
	}

	// 2. Count people in the frame
	count, err := h.service.CountPeople(c.Context(), req.Img)
	if err != nil {
		return err
	}

	// 3. Return the count
	return c.JSON(PeopleResponse{People: count})
}

// AnalyzeBatch handles POST /v1/frames/batch
func (h *FrameHandler) AnalyzeBatch(c *fiber.Ctx) error {
	// 1. Parse and validate request body
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if len(req.Frames) == 0 {
		return domain.ErrValidationFailed.WithError(errors.New("frames is required"))
	}
	if len(req.Frames) > maxBatchFrames {
		return domain.ErrValidationFailed.WithError(fmt.Errorf("batch accepts at most %d frames", maxBatchFrames))
	}

	// 2. Analyze with bounded parallelism, preserving input order
	items := make([]domain.BatchFrame, len(req.Frames))
	for i, frame := range req.Frames {
		items[i] = domain.BatchFrame{Img: frame.Img, SessionID: frame.SessionID}
	}
	results := h.service.AnalyzeBatch(c.Context(), items)

	// 3. Map per-frame outcomes; um frame ruim não derruba o lote
	resp := BatchResponse{Results: make([]BatchItemResult, len(results))}
	for i, result := range results {
		if result.Err != nil {
			resp.Results[i] = BatchItemResult{Error: newBatchItemError(result.Err)}
			continue
		}
		resp.Results[i] = BatchItemResult{Analysis: result.Analysis}
	}

	return c.JSON(resp)
}

// SaveSnapshot handles POST /v1/snapshots
func (h *FrameHandler) SaveSnapshot(c *fiber.Ctx) error {
	// 1. Parse and validate request body
	var req SnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if strings.TrimSpace(req.Img) == "" || strings.TrimSpace(req.User) == "" {
		return domain.ErrValidationFailed.WithError(errors.New("img and user are required"))
	}

	// 2. Persist the snapshot
	path, err := h.service.SaveSnapshot(req.Img, req.User)
	if err != nil {
		return err
	}

	// 3. Return the stored path
	return c.Status(fiber.StatusCreated).JSON(SnapshotResponse{Path: path})
}

// parseFrameRequest parses the common single-frame body
func parseFrameRequest(c *fiber.Ctx) (*FrameRequest, error) {
	var req FrameRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.ErrBadRequest.WithError(err)
	}

	if strings.TrimSpace(req.Img) == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("img is required"))
	}

	return &req, nil
}

// newBatchItemError flattens an analysis failure into the inline envelope
func newBatchItemError(err error) *BatchItemError {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return &BatchItemError{Code: appErr.Code, Message: appErr.Message}
	}
	return &BatchItemError{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}
}
