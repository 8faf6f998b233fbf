package service

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/vigia/internal/analysis"
	"github.com/saturnino-fabrica-de-software/vigia/internal/audit"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/frames"
	visionmock "github.com/saturnino-fabrica-de-software/vigia/internal/vision/mock"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockObservationRepository struct {
	mock.Mock
}

func (m *MockObservationRepository) Create(ctx context.Context, obs *domain.Observation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

func (m *MockObservationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.Observation, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Observation), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event domain.AlertEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeAlertFeed records fed reasons and answers with canned events.
type fakeAlertFeed struct {
	mu      sync.Mutex
	reasons []string
	events  []domain.AlertEvent
}

func (f *fakeAlertFeed) Observe(sessionID uuid.UUID, reason string) []domain.AlertEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
	return f.events
}

func (f *fakeAlertFeed) fedReasons() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reasons...)
}

// recordingAudit captures audit events for assertions.
type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAudit) Log(_ context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAudit) recorded() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event(nil), r.events...)
}

// captureHub records broadcasts; safe for the async observation path.
type captureHub struct {
	mu     sync.Mutex
	events []ws.EventType
	ch     chan ws.EventType
}

func newCaptureHub() *captureHub {
	return &captureHub{ch: make(chan ws.EventType, 16)}
}

func (h *captureHub) BroadcastToSession(sessionID uuid.UUID, eventType ws.EventType, data interface{}) {
	h.mu.Lock()
	h.events = append(h.events, eventType)
	h.mu.Unlock()

	select {
	case h.ch <- eventType:
	default:
	}
}

func (h *captureHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

// frameBase64 encodes a blank frame of the given size. The simulated
// detectors see a face on frames of at least 32x32 and nothing below that.
func frameBase64(t *testing.T, width, height int) string {
	t.Helper()

	img, err := frames.EncodeBase64(image.NewRGBA(image.Rect(0, 0, width, height)))
	require.NoError(t, err)
	return img
}

func newTestProctor(obs *MockObservationRepository, feed *fakeAlertFeed, notifier *MockNotifier, hub *captureHub, snapshotDir string) *ProctorService {
	detectors := visionmock.New()
	return &ProctorService{
		pipeline:     analysis.NewPipeline(detectors),
		people:       detectors.People,
		observations: obs,
		alerts:       feed,
		notifier:     notifier,
		hub:          hub,
		snapshotDir:  snapshotDir,
		logger:       newTestLogger(),
	}
}

func TestProctorService_AnalyzePose(t *testing.T) {
	t.Run("face found", func(t *testing.T) {
		obsRepo := &MockObservationRepository{}
		svc := newTestProctor(obsRepo, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		result, err := svc.AnalyzePose(context.Background(), frameBase64(t, 64, 64), nil)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusFaceFound, result.Status)
		require.NotNil(t, result.HeadDirection)
		assert.True(t, result.HeadDirection.LookingStraight)
		require.NotNil(t, result.Pose)
		assert.Equal(t, []string{"Student is looking at screen - OK"}, result.Warnings)

		obsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("no face", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		result, err := svc.AnalyzePose(context.Background(), frameBase64(t, 16, 16), nil)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusFaceNotFound, result.Status)
		assert.Nil(t, result.HeadDirection)
		assert.Nil(t, result.Pose)
		assert.Equal(t, []string{"No face detected in frame"}, result.Warnings)
	})

	t.Run("invalid image", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		_, err := svc.AnalyzePose(context.Background(), "definitely-not-base64!!", nil)

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_IMAGE", appErr.Code)
	})

	t.Run("records observation when session present", func(t *testing.T) {
		sessionID := uuid.New()
		done := make(chan struct{})

		obsRepo := &MockObservationRepository{}
		var recorded *domain.Observation
		obsRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.Observation)
			close(done)
		}).Return(nil)

		hub := newCaptureHub()
		svc := newTestProctor(obsRepo, &fakeAlertFeed{}, &MockNotifier{}, hub, t.TempDir())

		_, err := svc.AnalyzePose(context.Background(), frameBase64(t, 64, 64), &sessionID)
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("observation was never recorded")
		}

		assert.Equal(t, sessionID, recorded.SessionID)
		assert.Equal(t, domain.ReasonAttentive, recorded.Reason)
		assert.True(t, recorded.Attention)
		require.NotNil(t, recorded.Pitch)

		select {
		case event := <-hub.ch:
			assert.Equal(t, ws.EventObservationRecorded, event)
		case <-time.After(time.Second):
			t.Fatal("observation was never broadcast")
		}
	})
}

func TestProctorService_CheckAttention(t *testing.T) {
	t.Run("attentive", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		verdict, err := svc.CheckAttention(context.Background(), frameBase64(t, 64, 64), nil)

		require.NoError(t, err)
		assert.True(t, verdict.Attention)
		assert.Equal(t, domain.ReasonAttentive, verdict.Reason)
		assert.Equal(t, domain.SeverityNone, verdict.Severity)
		assert.Equal(t, "Student is attentive", verdict.Message)
		assert.NotNil(t, verdict.Direction)
	})

	t.Run("no face", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		verdict, err := svc.CheckAttention(context.Background(), frameBase64(t, 16, 16), nil)

		require.NoError(t, err)
		assert.False(t, verdict.Attention)
		assert.Equal(t, domain.ReasonNoFace, verdict.Reason)
		assert.Equal(t, domain.SeverityHigh, verdict.Severity)
		assert.Nil(t, verdict.Direction)
	})

	t.Run("feeds alerts and notifies when rule fires", func(t *testing.T) {
		sessionID := uuid.New()
		firedEvent := domain.AlertEvent{
			ID:        uuid.New(),
			SessionID: sessionID,
			Rule:      "no_face",
			Severity:  domain.AlertCritical,
			Count:     5,
		}

		obsRepo := &MockObservationRepository{}
		obsRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		feed := &fakeAlertFeed{events: []domain.AlertEvent{firedEvent}}

		notified := make(chan struct{})
		notifier := &MockNotifier{}
		notifier.On("Notify", mock.Anything, firedEvent).Run(func(args mock.Arguments) {
			close(notified)
		}).Return(nil)

		svc := newTestProctor(obsRepo, feed, notifier, newCaptureHub(), t.TempDir())

		_, err := svc.CheckAttention(context.Background(), frameBase64(t, 16, 16), &sessionID)
		require.NoError(t, err)

		select {
		case <-notified:
		case <-time.After(time.Second):
			t.Fatal("fired alert was never notified")
		}

		assert.Equal(t, []string{domain.ReasonNoFace}, feed.fedReasons())
		notifier.AssertExpectations(t)
	})

	t.Run("skips alerts when persistence fails", func(t *testing.T) {
		sessionID := uuid.New()
		done := make(chan struct{})

		obsRepo := &MockObservationRepository{}
		obsRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			close(done)
		}).Return(domain.ErrSessionNotFound)

		feed := &fakeAlertFeed{}
		hub := newCaptureHub()
		svc := newTestProctor(obsRepo, feed, &MockNotifier{}, hub, t.TempDir())

		_, err := svc.CheckAttention(context.Background(), frameBase64(t, 64, 64), &sessionID)
		require.NoError(t, err, "analysis response must not depend on persistence")

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("observation save was never attempted")
		}

		// O caminho assíncrono para aqui: nada de broadcast nem alertas.
		time.Sleep(50 * time.Millisecond)
		assert.Zero(t, hub.count())
		assert.Empty(t, feed.fedReasons())
	})
}

func TestProctorService_CountPeople(t *testing.T) {
	t.Run("counts people in frame", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		count, err := svc.CountPeople(context.Background(), frameBase64(t, 64, 64))

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unavailable without a counter", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())
		svc.people = nil

		_, err := svc.CountPeople(context.Background(), frameBase64(t, 64, 64))

		assert.ErrorIs(t, err, domain.ErrPeopleCountUnavailable)
	})

	t.Run("invalid image", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		_, err := svc.CountPeople(context.Background(), "???")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_IMAGE", appErr.Code)
	})
}

func TestProctorService_AnalyzeBatch(t *testing.T) {
	svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

	items := []domain.BatchFrame{
		{Img: frameBase64(t, 64, 64)},
		{Img: "broken"},
		{Img: frameBase64(t, 16, 16)},
	}

	results := svc.AnalyzeBatch(context.Background(), items)

	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, domain.StatusFaceFound, results[0].Analysis.Status)

	require.Error(t, results[1].Err)
	assert.Nil(t, results[1].Analysis)

	require.NoError(t, results[2].Err)
	assert.Equal(t, domain.StatusFaceNotFound, results[2].Analysis.Status)
}

func TestProctorService_AnalyzeBatch_Empty(t *testing.T) {
	svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

	results := svc.AnalyzeBatch(context.Background(), nil)

	assert.Empty(t, results)
}

func TestProctorService_SaveSnapshot(t *testing.T) {
	t.Run("saves under sanitized student name", func(t *testing.T) {
		dir := t.TempDir()
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), dir)

		path, err := svc.SaveSnapshot(frameBase64(t, 64, 64), "joao.silva-1718467200")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "joao.silva.jpg"), path)

		_, statErr := os.Stat(path)
		assert.NoError(t, statErr)
	})

	t.Run("emits audit event with the saved path", func(t *testing.T) {
		dir := t.TempDir()
		audits := &recordingAudit{}
		detectors := visionmock.New()
		svc := NewProctorService(
			analysis.NewPipeline(detectors),
			detectors.People,
			&MockObservationRepository{},
			&fakeAlertFeed{},
			&MockNotifier{},
			newCaptureHub(),
			dir,
			newTestLogger(),
			WithProctorAudit(audits),
		)

		path, err := svc.SaveSnapshot(frameBase64(t, 64, 64), "joao.silva-1718467200")
		require.NoError(t, err)

		events := audits.recorded()
		require.Len(t, events, 1)
		assert.Equal(t, audit.EventSnapshotSaved, events[0].EventType)
		assert.Equal(t, path, events[0].Path)
		assert.True(t, events[0].Success)
	})

	t.Run("rejects names that sanitize to nothing", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		_, err := svc.SaveSnapshot(frameBase64(t, 64, 64), "-1718467200")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
	})

	t.Run("neutralizes path traversal", func(t *testing.T) {
		dir := t.TempDir()
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), dir)

		path, err := svc.SaveSnapshot(frameBase64(t, 64, 64), "../../etc/passwd")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "etcpasswd.jpg"), path)
	})

	t.Run("invalid image", func(t *testing.T) {
		svc := newTestProctor(&MockObservationRepository{}, &fakeAlertFeed{}, &MockNotifier{}, newCaptureHub(), t.TempDir())

		_, err := svc.SaveSnapshot("not an image", "aladdin")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_IMAGE", appErr.Code)
	})
}

func TestSanitizeSnapshotName(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		expected string
	}{
		{
			name:     "strips trailing timestamp",
			user:     "aladdin-1718467200",
			expected: "aladdin",
		},
		{
			name:     "plain name untouched",
			user:     "user_001",
			expected: "user_001",
		},
		{
			name:     "keeps earlier dashes",
			user:     "user-42-9999999999",
			expected: "user-42",
		},
		{
			name:     "drops spaces and slashes",
			user:     "maria silva/..",
			expected: "mariasilva",
		},
		{
			name:     "timestamp only becomes empty",
			user:     "-1718467200",
			expected: "",
		},
		{
			name:     "dots alone become empty",
			user:     "...",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSnapshotName(tt.user))
		})
	}
}
