package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// MockProctorService is a mock implementation of ProctorService
type MockProctorService struct {
	mock.Mock
}

func (m *MockProctorService) AnalyzePose(ctx context.Context, img string, sessionID *uuid.UUID) (*domain.FrameAnalysis, error) {
	args := m.Called(ctx, img, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FrameAnalysis), args.Error(1)
}

func (m *MockProctorService) CheckAttention(ctx context.Context, img string, sessionID *uuid.UUID) (*domain.AttentionVerdict, error) {
	args := m.Called(ctx, img, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttentionVerdict), args.Error(1)
}

func (m *MockProctorService) CountPeople(ctx context.Context, img string) (int, error) {
	args := m.Called(ctx, img)
	return args.Int(0), args.Error(1)
}

func (m *MockProctorService) AnalyzeBatch(ctx context.Context, items []domain.BatchFrame) []domain.BatchResult {
	args := m.Called(ctx, items)
	return args.Get(0).([]domain.BatchResult)
}

func (m *MockProctorService) SaveSnapshot(img, user string) (string, error) {
	args := m.Called(img, user)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestApp wires a handler with the AppError mapping the real router
// gets from its ErrorHandler.
func createTestApp(method, path string, h fiber.Handler) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			if appErr, ok := err.(*domain.AppError); ok {
				return c.Status(appErr.StatusCode).JSON(appErr)
			}
			return c.Status(500).SendString(err.Error())
		}
		return nil
	})

	app.Add(method, path, h)
	return app
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestFrameHandler_AnalyzePose(t *testing.T) {
	sessionID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockProctorService)
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "analyzes frame successfully",
			body: FrameRequest{Img: "base64data"},
			setupMock: func(m *MockProctorService) {
				m.On("AnalyzePose", mock.Anything, "base64data", (*uuid.UUID)(nil)).Return(&domain.FrameAnalysis{
					Status:        domain.StatusFaceFound,
					HeadDirection: &domain.HeadDirection{LookingStraight: true, Pitch: 0.01, Yaw: -0.02},
					Pose:          &domain.HeadPose{Rotation: domain.RotationEstimate{Pitch: 0.01, Yaw: -0.02}},
					Warnings:      []string{"Student is looking at screen - OK"},
				}, nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result domain.FrameAnalysis
				decodeBody(t, resp, &result)
				assert.Equal(t, domain.StatusFaceFound, result.Status)
				assert.NotNil(t, result.Pose)
				assert.Equal(t, []string{"Student is looking at screen - OK"}, result.Warnings)
			},
		},
		{
			name: "passes session id to the service",
			body: FrameRequest{Img: "base64data", SessionID: &sessionID},
			setupMock: func(m *MockProctorService) {
				m.On("AnalyzePose", mock.Anything, "base64data", mock.MatchedBy(func(id *uuid.UUID) bool {
					return id != nil && *id == sessionID
				})).Return(&domain.FrameAnalysis{Status: domain.StatusFaceNotFound, Warnings: []string{"No face detected in frame"}}, nil)
			},
			expectedStatus: 200,
		},
		{
			name:           "rejects missing img",
			body:           FrameRequest{},
			setupMock:      func(m *MockProctorService) {},
			expectedStatus: 422,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var appErr domain.AppError
				decodeBody(t, resp, &appErr)
				assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
			},
		},
		{
			name: "maps analysis errors",
			body: FrameRequest{Img: "notbase64"},
			setupMock: func(m *MockProctorService) {
				m.On("AnalyzePose", mock.Anything, "notbase64", (*uuid.UUID)(nil)).Return(nil, domain.ErrInvalidImage)
			},
			expectedStatus: 422,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var appErr domain.AppError
				decodeBody(t, resp, &appErr)
				assert.Equal(t, "INVALID_IMAGE", appErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProctorService{}
			tt.setupMock(mockService)

			h := NewFrameHandler(mockService, testLogger())
			app := createTestApp("POST", "/v1/frames/pose", h.AnalyzePose)

			resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/pose", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestFrameHandler_AnalyzePose_MalformedJSON(t *testing.T) {
	mockService := &MockProctorService{}
	h := NewFrameHandler(mockService, testLogger())
	app := createTestApp("POST", "/v1/frames/pose", h.AnalyzePose)

	req := httptest.NewRequest("POST", "/v1/frames/pose", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	mockService.AssertNotCalled(t, "AnalyzePose", mock.Anything, mock.Anything, mock.Anything)
}

func TestFrameHandler_CheckAttention(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockProctorService)
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "attentive student",
			body: FrameRequest{Img: "base64data"},
			setupMock: func(m *MockProctorService) {
				m.On("CheckAttention", mock.Anything, "base64data", (*uuid.UUID)(nil)).Return(&domain.AttentionVerdict{
					Attention: true,
					Reason:    domain.ReasonAttentive,
					Severity:  domain.SeverityNone,
					Message:   "Student is attentive",
				}, nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var verdict domain.AttentionVerdict
				decodeBody(t, resp, &verdict)
				assert.True(t, verdict.Attention)
				assert.Equal(t, domain.ReasonAttentive, verdict.Reason)
			},
		},
		{
			name: "no face is a verdict, not an error",
			body: FrameRequest{Img: "base64data"},
			setupMock: func(m *MockProctorService) {
				m.On("CheckAttention", mock.Anything, "base64data", (*uuid.UUID)(nil)).Return(&domain.AttentionVerdict{
					Attention: false,
					Reason:    domain.ReasonNoFace,
					Severity:  domain.SeverityHigh,
					Message:   "No face detected",
				}, nil)
			},
			expectedStatus: 200,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var verdict domain.AttentionVerdict
				decodeBody(t, resp, &verdict)
				assert.False(t, verdict.Attention)
				assert.Equal(t, domain.ReasonNoFace, verdict.Reason)
				assert.Nil(t, verdict.Direction)
			},
		},
		{
			name:           "rejects missing img",
			body:           map[string]string{},
			setupMock:      func(m *MockProctorService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProctorService{}
			tt.setupMock(mockService)

			h := NewFrameHandler(mockService, testLogger())
			app := createTestApp("POST", "/v1/frames/attention", h.CheckAttention)

			resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/attention", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestFrameHandler_CountPeople(t *testing.T) {
	t.Run("returns the count", func(t *testing.T) {
		mockService := &MockProctorService{}
		mockService.On("CountPeople", mock.Anything, "base64data").Return(2, nil)

		h := NewFrameHandler(mockService, testLogger())
		app := createTestApp("POST", "/v1/frames/people", h.CountPeople)

		resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/people", FrameRequest{Img: "base64data"}))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result PeopleResponse
		decodeBody(t, resp, &result)
		assert.Equal(t, 2, result.People)
	})

	t.Run("maps provider unavailability", func(t *testing.T) {
		mockService := &MockProctorService{}
		mockService.On("CountPeople", mock.Anything, "base64data").Return(0, domain.ErrPeopleCountUnavailable)

		h := NewFrameHandler(mockService, testLogger())
		app := createTestApp("POST", "/v1/frames/people", h.CountPeople)

		resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/people", FrameRequest{Img: "base64data"}))
		require.NoError(t, err)
		assert.Equal(t, 501, resp.StatusCode)

		var appErr domain.AppError
		decodeBody(t, resp, &appErr)
		assert.Equal(t, "PEOPLE_COUNT_UNAVAILABLE", appErr.Code)
	})
}

func TestFrameHandler_AnalyzeBatch(t *testing.T) {
	t.Run("keeps per-frame outcomes in order", func(t *testing.T) {
		mockService := &MockProctorService{}
		mockService.On("AnalyzeBatch", mock.Anything, mock.MatchedBy(func(items []domain.BatchFrame) bool {
			return len(items) == 2 && items[0].Img == "good" && items[1].Img == "bad"
		})).Return([]domain.BatchResult{
			{Analysis: &domain.FrameAnalysis{Status: domain.StatusFaceFound, Warnings: []string{"Student is looking at screen - OK"}}},
			{Err: domain.ErrInvalidImage},
		})

		h := NewFrameHandler(mockService, testLogger())
		app := createTestApp("POST", "/v1/frames/batch", h.AnalyzeBatch)

		body := BatchRequest{Frames: []FrameRequest{{Img: "good"}, {Img: "bad"}}}
		resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/batch", body))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result BatchResponse
		decodeBody(t, resp, &result)
		require.Len(t, result.Results, 2)

		require.NotNil(t, result.Results[0].Analysis)
		assert.Equal(t, domain.StatusFaceFound, result.Results[0].Analysis.Status)
		assert.Nil(t, result.Results[0].Error)

		require.NotNil(t, result.Results[1].Error)
		assert.Equal(t, "INVALID_IMAGE", result.Results[1].Error.Code)
		assert.Nil(t, result.Results[1].Analysis)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		mockService := &MockProctorService{}
		h := NewFrameHandler(mockService, testLogger())
		app := createTestApp("POST", "/v1/frames/batch", h.AnalyzeBatch)

		resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/batch", BatchRequest{}))
		require.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)

		mockService.AssertNotCalled(t, "AnalyzeBatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized batch", func(t *testing.T) {
		mockService := &MockProctorService{}
		h := NewFrameHandler(mockService, testLogger())
		app := createTestApp("POST", "/v1/frames/batch", h.AnalyzeBatch)

		frames := make([]FrameRequest, maxBatchFrames+1)
		for i := range frames {
			frames[i] = FrameRequest{Img: "base64data"}
		}

		resp, err := app.Test(jsonRequest(t, "POST", "/v1/frames/batch", BatchRequest{Frames: frames}))
		require.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)

		mockService.AssertNotCalled(t, "AnalyzeBatch", mock.Anything, mock.Anything)
	})
}

func TestFrameHandler_SaveSnapshot(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockProctorService)
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "stores the snapshot",
			body: SnapshotRequest{Img: "base64data", User: "joao.silva-1718467200"},
			setupMock: func(m *MockProctorService) {
				m.On("SaveSnapshot", "base64data", "joao.silva-1718467200").Return("images/joao.silva.jpg", nil)
			},
			expectedStatus: 201,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result SnapshotResponse
				decodeBody(t, resp, &result)
				assert.Equal(t, "images/joao.silva.jpg", result.Path)
			},
		},
		{
			name:           "rejects missing user",
			body:           SnapshotRequest{Img: "base64data"},
			setupMock:      func(m *MockProctorService) {},
			expectedStatus: 422,
		},
		{
			name:           "rejects missing img",
			body:           SnapshotRequest{User: "joao"},
			setupMock:      func(m *MockProctorService) {},
			expectedStatus: 422,
		},
		{
			name: "maps service failures",
			body: SnapshotRequest{Img: "base64data", User: "-1718467200"},
			setupMock: func(m *MockProctorService) {
				m.On("SaveSnapshot", "base64data", "-1718467200").Return("", domain.ErrValidationFailed)
			},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProctorService{}
			tt.setupMock(mockService)

			h := NewFrameHandler(mockService, testLogger())
			app := createTestApp("POST", "/v1/snapshots", h.SaveSnapshot)

			resp, err := app.Test(jsonRequest(t, "POST", "/v1/snapshots", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}

			mockService.AssertExpectations(t)
		})
	}
}
