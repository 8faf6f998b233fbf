package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
)

// TTLs do cache de relatório. Sessão ativa recebe observação a cada frame,
// então o cache só absorve rajadas de polling dos painéis; sessão encerrada
// fica estável por mais tempo (varreduras pendentes ainda podem gerar alerta,
// daí o teto de minutos e não de horas).
const (
	reportTTLActive = 15 * time.Second
	reportTTLClosed = 5 * time.Minute
)

// ReportCache guarda relatórios serializados por um TTL curto.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Service struct {
	repo     *Repository
	sessions repository.SessionRepositoryInterface
	alerts   repository.AlertEventRepositoryInterface
	reports  ReportCache
	logger   *slog.Logger
}

// NewService monta o serviço de relatórios. O cache é opcional; sem ele todo
// relatório é agregado direto do banco.
func NewService(repo *Repository, sessions repository.SessionRepositoryInterface, alerts repository.AlertEventRepositoryInterface, reports ReportCache, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		alerts:   alerts,
		reports:  reports,
		logger:   logger,
	}
}

// BuildSessionReport monta o relatório consolidado de uma sessão. Funciona
// tanto para sessões encerradas quanto para sessões ainda em andamento.
func (s *Service) BuildSessionReport(ctx context.Context, sessionID uuid.UUID) (*SessionReport, error) {
	key := reportCacheKey(sessionID)

	if s.reports != nil {
		if raw, err := s.reports.Get(ctx, key); err == nil {
			var cached SessionReport
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			// Entrada ilegível não derruba o relatório; regenera e sobrescreve.
		}
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.AggregateSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("aggregate observations: %w", err)
	}

	alerts, err := s.alerts.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	now := time.Now().UTC()
	report := &SessionReport{
		Session:         *session,
		Observations:    *totals,
		AttentionRate:   attentionRate(totals.Attentive, totals.Total),
		DurationSeconds: sessionDuration(session, now),
		Alerts:          alerts,
		GeneratedAt:     now,
	}

	if s.reports != nil {
		s.storeReport(ctx, key, report, session.ClosedAt != nil)
	}

	return report, nil
}

// storeReport grava o relatório no cache em modo best-effort: falha vira
// log, nunca erro para o chamador.
func (s *Service) storeReport(ctx context.Context, key string, report *SessionReport, closed bool) {
	raw, err := json.Marshal(report)
	if err != nil {
		s.logger.Warn("failed to marshal report for cache", "error", err, "key", key)
		return
	}

	ttl := reportTTLActive
	if closed {
		ttl = reportTTLClosed
	}

	if err := s.reports.Set(ctx, key, raw, ttl); err != nil {
		s.logger.Warn("failed to cache report", "error", err, "key", key)
	}
}

func reportCacheKey(sessionID uuid.UUID) string {
	return "report:" + sessionID.String()
}

// attentionRate returns the share of attentive observations (0-100)
func attentionRate(attentive, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(attentive) / float64(total) * 100
}

// sessionDuration returns elapsed seconds from start to close, or to now for
// sessions still active
func sessionDuration(session *domain.ExamSession, now time.Time) float64 {
	end := now
	if session.ClosedAt != nil {
		end = *session.ClosedAt
	}

	d := end.Sub(session.StartedAt)
	if d < 0 {
		return 0
	}
	return d.Seconds()
}
