package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/vigia/internal/audit"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/stats"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.ExamSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamSession), args.Error(1)
}

func (m *MockSessionRepository) Close(ctx context.Context, id uuid.UUID) (*domain.ExamSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamSession), args.Error(1)
}

func (m *MockSessionRepository) ListActive(ctx context.Context) ([]domain.ExamSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExamSession), args.Error(1)
}

type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) BuildSessionReport(ctx context.Context, sessionID uuid.UUID) (*stats.SessionReport, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.SessionReport), args.Error(1)
}

// fakeForgetter records which sessions had their alert state dropped.
type fakeForgetter struct {
	mu        sync.Mutex
	forgotten []uuid.UUID
}

func (f *fakeForgetter) ForgetSession(sessionID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgotten = append(f.forgotten, sessionID)
}

func (f *fakeForgetter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.forgotten)
}

func newTestSessionService(repo *MockSessionRepository, reports *MockReportBuilder, forgetter *fakeForgetter, hub *captureHub) *SessionService {
	return &SessionService{
		sessions: repo,
		reports:  reports,
		alerts:   forgetter,
		hub:      hub,
		tokens:   ws.NewTokenService("test-secret", "vigia-test", 5*time.Minute),
		logger:   newTestLogger(),
	}
}

func TestSessionService_Create(t *testing.T) {
	tests := []struct {
		name       string
		examID     string
		studentID  string
		setupMocks func(*MockSessionRepository)
		wantErr    string
	}{
		{
			name:      "successful creation",
			examID:    "calculus-2025-1",
			studentID: "student_042",
			setupMocks: func(repo *MockSessionRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:      "missing exam id",
			examID:    "",
			studentID: "student_042",
			setupMocks: func(repo *MockSessionRepository) {
			},
			wantErr: "VALIDATION_FAILED",
		},
		{
			name:      "missing student id",
			examID:    "calculus-2025-1",
			studentID: "",
			setupMocks: func(repo *MockSessionRepository) {
			},
			wantErr: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockSessionRepository{}
			tt.setupMocks(repo)

			svc := newTestSessionService(repo, &MockReportBuilder{}, &fakeForgetter{}, newCaptureHub())

			session, err := svc.Create(context.Background(), tt.examID, tt.studentID)

			if tt.wantErr != "" {
				var appErr *domain.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErr, appErr.Code)
				assert.Nil(t, session)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				require.NotNil(t, session)
				assert.Equal(t, tt.examID, session.ExamID)
				assert.Equal(t, tt.studentID, session.StudentID)
				assert.Equal(t, domain.SessionActive, session.Status)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestSessionService_Create_AuditsLifecycle(t *testing.T) {
	repo := &MockSessionRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.ExamSession).ID = uuid.New()
	}).Return(nil)

	audits := &recordingAudit{}
	svc := NewSessionService(
		repo,
		&MockReportBuilder{},
		&fakeForgetter{},
		newCaptureHub(),
		ws.NewTokenService("test-secret", "vigia-test", 5*time.Minute),
		newTestLogger(),
		WithSessionAudit(audits),
	)

	session, err := svc.Create(context.Background(), "calculus-2025-1", "student_042")
	require.NoError(t, err)

	sessionID := session.ID
	repo.On("Close", mock.Anything, sessionID).Return(&domain.ExamSession{
		ID:        sessionID,
		StudentID: "student_042",
		Status:    domain.SessionClosed,
	}, nil)

	_, err = svc.Close(context.Background(), sessionID)
	require.NoError(t, err)

	events := audits.recorded()
	require.Len(t, events, 2)
	assert.Equal(t, audit.EventSessionCreated, events[0].EventType)
	assert.Equal(t, "calculus-2025-1", events[0].ExamID)
	assert.Equal(t, audit.EventSessionClosed, events[1].EventType)
	assert.Equal(t, sessionID.String(), events[1].SessionID)
}

func TestSessionService_Close(t *testing.T) {
	t.Run("closes and cleans up", func(t *testing.T) {
		sessionID := uuid.New()
		now := time.Now()
		closed := &domain.ExamSession{
			ID:       sessionID,
			Status:   domain.SessionClosed,
			ClosedAt: &now,
		}

		repo := &MockSessionRepository{}
		repo.On("Close", mock.Anything, sessionID).Return(closed, nil)

		forgetter := &fakeForgetter{}
		hub := newCaptureHub()
		svc := newTestSessionService(repo, &MockReportBuilder{}, forgetter, hub)

		session, err := svc.Close(context.Background(), sessionID)

		require.NoError(t, err)
		assert.Equal(t, domain.SessionClosed, session.Status)
		assert.Equal(t, 1, forgetter.count())
		assert.Equal(t, sessionID, forgetter.forgotten[0])

		select {
		case event := <-hub.ch:
			assert.Equal(t, ws.EventSessionClosed, event)
		case <-time.After(time.Second):
			t.Fatal("close was never broadcast")
		}
	})

	t.Run("already closed", func(t *testing.T) {
		sessionID := uuid.New()

		repo := &MockSessionRepository{}
		repo.On("Close", mock.Anything, sessionID).Return(nil, domain.ErrSessionClosed)

		forgetter := &fakeForgetter{}
		svc := newTestSessionService(repo, &MockReportBuilder{}, forgetter, newCaptureHub())

		_, err := svc.Close(context.Background(), sessionID)

		assert.ErrorIs(t, err, domain.ErrSessionClosed)
		assert.Zero(t, forgetter.count())
	})
}

func TestSessionService_MonitorToken(t *testing.T) {
	t.Run("issues token bound to the session", func(t *testing.T) {
		sessionID := uuid.New()

		repo := &MockSessionRepository{}
		repo.On("GetByID", mock.Anything, sessionID).Return(&domain.ExamSession{
			ID:     sessionID,
			Status: domain.SessionActive,
		}, nil)

		svc := newTestSessionService(repo, &MockReportBuilder{}, &fakeForgetter{}, newCaptureHub())

		token, expiresAt, err := svc.MonitorToken(context.Background(), sessionID)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := svc.tokens.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, sessionID, claims.SessionID)
	})

	t.Run("refuses closed session", func(t *testing.T) {
		sessionID := uuid.New()

		repo := &MockSessionRepository{}
		repo.On("GetByID", mock.Anything, sessionID).Return(&domain.ExamSession{
			ID:     sessionID,
			Status: domain.SessionClosed,
		}, nil)

		svc := newTestSessionService(repo, &MockReportBuilder{}, &fakeForgetter{}, newCaptureHub())

		_, _, err := svc.MonitorToken(context.Background(), sessionID)

		assert.ErrorIs(t, err, domain.ErrSessionClosed)
	})

	t.Run("session not found", func(t *testing.T) {
		sessionID := uuid.New()

		repo := &MockSessionRepository{}
		repo.On("GetByID", mock.Anything, sessionID).Return(nil, domain.ErrSessionNotFound)

		svc := newTestSessionService(repo, &MockReportBuilder{}, &fakeForgetter{}, newCaptureHub())

		_, _, err := svc.MonitorToken(context.Background(), sessionID)

		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestSessionService_Report(t *testing.T) {
	t.Run("delegates to the report builder", func(t *testing.T) {
		sessionID := uuid.New()
		report := &stats.SessionReport{
			Session:       domain.ExamSession{ID: sessionID},
			AttentionRate: 87.5,
		}

		reports := &MockReportBuilder{}
		reports.On("BuildSessionReport", mock.Anything, sessionID).Return(report, nil)

		svc := newTestSessionService(&MockSessionRepository{}, reports, &fakeForgetter{}, newCaptureHub())

		got, err := svc.Report(context.Background(), sessionID)

		require.NoError(t, err)
		assert.Equal(t, report, got)
		reports.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		sessionID := uuid.New()

		reports := &MockReportBuilder{}
		reports.On("BuildSessionReport", mock.Anything, sessionID).Return(nil, domain.ErrSessionNotFound)

		svc := newTestSessionService(&MockSessionRepository{}, reports, &fakeForgetter{}, newCaptureHub())

		_, err := svc.Report(context.Background(), sessionID)

		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestSessionService_ListActive(t *testing.T) {
	repo := &MockSessionRepository{}
	repo.On("ListActive", mock.Anything).Return([]domain.ExamSession{
		{ID: uuid.New(), Status: domain.SessionActive},
		{ID: uuid.New(), Status: domain.SessionActive},
	}, nil)

	svc := newTestSessionService(repo, &MockReportBuilder{}, &fakeForgetter{}, newCaptureHub())

	sessions, err := svc.ListActive(context.Background())

	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
