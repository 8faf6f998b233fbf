package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/vigia/internal/analysis"
	"github.com/saturnino-fabrica-de-software/vigia/internal/audit"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/frames"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
	"github.com/saturnino-fabrica-de-software/vigia/internal/ws"
)

const maxBatchConcurrency = 10

// trailingTimestamp casa o sufixo "-<digitos>" que o cliente de prova anexa
// ao identificador do aluno em cada snapshot.
var trailingTimestamp = regexp.MustCompile(`-\d+$`)

var unsafeSnapshotChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// AlertNotifier entrega um alerta disparado aos canais configurados.
type AlertNotifier interface {
	Notify(ctx context.Context, event domain.AlertEvent) error
}

// MonitorBroadcaster empurra eventos para os monitores da sessão.
type MonitorBroadcaster interface {
	BroadcastToSession(sessionID uuid.UUID, eventType ws.EventType, data interface{})
}

// AlertFeed é o motor de regras alimentado pelas observações.
type AlertFeed interface {
	Observe(sessionID uuid.UUID, reason string) []domain.AlertEvent
}

// ProctorService executa a análise de frames e cuida dos efeitos colaterais
// de monitoramento: observações persistidas, alertas e transmissão ao vivo.
type ProctorService struct {
	pipeline     *analysis.Pipeline
	people       vision.PeopleCounter
	observations repository.ObservationRepositoryInterface
	alerts       AlertFeed
	notifier     AlertNotifier
	hub          MonitorBroadcaster
	snapshotDir  string
	logger       *slog.Logger
	auditLogger  audit.Logger
}

// ProctorOption defines optional configuration for ProctorService
type ProctorOption func(*ProctorService)

// WithProctorAudit sets the audit logger for snapshot operations
func WithProctorAudit(logger audit.Logger) ProctorOption {
	return func(s *ProctorService) {
		s.auditLogger = logger
	}
}

func NewProctorService(
	pipeline *analysis.Pipeline,
	people vision.PeopleCounter,
	observations repository.ObservationRepositoryInterface,
	alerts AlertFeed,
	notifier AlertNotifier,
	hub MonitorBroadcaster,
	snapshotDir string,
	logger *slog.Logger,
	opts ...ProctorOption,
) *ProctorService {
	s := &ProctorService{
		pipeline:     pipeline,
		people:       people,
		observations: observations,
		alerts:       alerts,
		notifier:     notifier,
		hub:          hub,
		snapshotDir:  snapshotDir,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AnalyzePose roda o pipeline completo sobre um frame em base64 e devolve
// direção, pose crua e avisos. Com session_id presente a observação derivada
// é registrada de forma assíncrona; a resposta não espera por ela.
func (s *ProctorService) AnalyzePose(ctx context.Context, img string, sessionID *uuid.UUID) (*domain.FrameAnalysis, error) {
	frame, err := frames.DecodeBase64(img)
	if err != nil {
		return nil, err
	}

	result, err := s.pipeline.Analyze(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("analyze frame: %w", err)
	}

	if sessionID != nil {
		s.recordObservation(*sessionID, analysis.EvaluateAttention(result.HeadDirection))
	}

	return result, nil
}

// CheckAttention aplica a política de atenção sobre um frame em base64.
func (s *ProctorService) CheckAttention(ctx context.Context, img string, sessionID *uuid.UUID) (*domain.AttentionVerdict, error) {
	frame, err := frames.DecodeBase64(img)
	if err != nil {
		return nil, err
	}

	verdict, err := s.pipeline.CheckAttention(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("check attention: %w", err)
	}

	if sessionID != nil {
		s.recordObservation(*sessionID, verdict)
	}

	return verdict, nil
}

// CountPeople conta pessoas no frame inteiro.
func (s *ProctorService) CountPeople(ctx context.Context, img string) (int, error) {
	if s.people == nil {
		return 0, domain.ErrPeopleCountUnavailable
	}

	frame, err := frames.DecodeBase64(img)
	if err != nil {
		return 0, err
	}

	count, err := s.people.CountPeople(ctx, frame)
	if err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}

	return count, nil
}

// AnalyzeBatch analisa vários frames com paralelismo limitado, preservando
// a ordem de entrada. Cada frame falha ou responde por conta própria.
func (s *ProctorService) AnalyzeBatch(ctx context.Context, items []domain.BatchFrame) []domain.BatchResult {
	results := make([]domain.BatchResult, len(items))

	var g errgroup.Group
	g.SetLimit(maxBatchConcurrency)

	for i, item := range items {
		g.Go(func() error {
			result, err := s.AnalyzePose(ctx, item.Img, item.SessionID)
			results[i] = domain.BatchResult{Analysis: result, Err: err}
			return nil
		})
	}

	// Erros ficam por item; Wait nunca devolve erro aqui.
	_ = g.Wait()

	return results
}

// SaveSnapshot grava o frame como JPEG em nome do aluno e devolve o caminho.
func (s *ProctorService) SaveSnapshot(img, user string) (string, error) {
	frame, err := frames.DecodeBase64(img)
	if err != nil {
		return "", err
	}

	name := SanitizeSnapshotName(user)
	if name == "" {
		return "", domain.ErrValidationFailed.WithError(fmt.Errorf("user %q produces an empty snapshot name", user))
	}

	path := filepath.Join(s.snapshotDir, name+".jpg")
	if err := frames.SaveJPEG(frame, path); err != nil {
		s.logAudit(context.Background(), audit.Event{
			EventType: audit.EventSnapshotSaved,
			StudentID: user,
		}, err)
		return "", domain.ErrSnapshotFailed.WithError(err)
	}

	s.logAudit(context.Background(), audit.Event{
		EventType: audit.EventSnapshotSaved,
		StudentID: user,
		Path:      path,
	}, nil)

	return path, nil
}

// Audit failure does not affect the operation (fire-and-forget)
func (s *ProctorService) logAudit(ctx context.Context, event audit.Event, err error) {
	if s.auditLogger == nil {
		return
	}

	event.Success = err == nil
	if err != nil {
		event.Error = err.Error()
	}

	_ = s.auditLogger.Log(ctx, event)
}

// SanitizeSnapshotName derruba o sufixo de timestamp "-<digitos>" e qualquer
// caractere que não possa virar nome de arquivo. Nomes que sobram vazios ou
// só com pontos são rejeitados pelo chamador.
func SanitizeSnapshotName(user string) string {
	name := trailingTimestamp.ReplaceAllString(user, "")
	name = unsafeSnapshotChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ".")
	return name
}

// recordObservation persiste a observação e alimenta alertas e monitores em
// segundo plano, no padrão best-effort: falha vira log, nunca erro da análise.
func (s *ProctorService) recordObservation(sessionID uuid.UUID, verdict *domain.AttentionVerdict) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		obs := domain.NewObservation(sessionID, verdict)
		if err := s.observations.Create(ctx, obs); err != nil {
			s.logger.Warn("failed to record observation",
				"error", err,
				"session_id", sessionID,
			)
			return
		}

		if s.hub != nil {
			s.hub.BroadcastToSession(sessionID, ws.EventObservationRecorded, obs)
		}

		if s.alerts == nil {
			return
		}

		for _, event := range s.alerts.Observe(sessionID, verdict.Reason) {
			if s.notifier == nil {
				continue
			}
			if err := s.notifier.Notify(ctx, event); err != nil {
				s.logger.Warn("failed to deliver alert",
					"error", err,
					"session_id", sessionID,
					"rule", event.Rule,
				)
			}
		}
	}()
}
