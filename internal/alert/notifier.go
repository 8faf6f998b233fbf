package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/webhook"
)

// Broadcaster empurra um alerta para os monitores conectados da sessão.
type Broadcaster interface {
	BroadcastAlert(sessionID uuid.UUID, event domain.AlertEvent)
}

// Notifier entrega um alerta disparado para todos os canais configurados:
// banco, webhook assinado e monitores websocket. Canais nulos são pulados,
// então o notifier funciona mesmo sem webhook ou hub configurados.
type Notifier struct {
	repo   repository.AlertEventRepositoryInterface
	sender *webhook.Sender
	hub    Broadcaster
	logger *slog.Logger
}

func NewNotifier(repo repository.AlertEventRepositoryInterface, sender *webhook.Sender, hub Broadcaster, logger *slog.Logger) *Notifier {
	return &Notifier{
		repo:   repo,
		sender: sender,
		hub:    hub,
		logger: logger,
	}
}

// Notify persists the event and fans it out. A failed channel is logged and
// counted; remaining channels still run.
func (n *Notifier) Notify(ctx context.Context, event domain.AlertEvent) error {
	n.logger.Info("alert fired",
		"session_id", event.SessionID,
		"rule", event.Rule,
		"severity", event.Severity,
		"count", event.Count,
	)

	attempted := 1
	failed := 0

	if err := n.repo.Create(ctx, &event); err != nil {
		n.logger.Error("failed to persist alert event",
			"session_id", event.SessionID,
			"rule", event.Rule,
			"error", err,
		)
		failed++
	}

	if n.sender != nil {
		attempted++
		payload := webhook.EventPayload{
			Type:      webhook.EventAlertFired,
			Data:      event,
			SessionID: event.SessionID,
			Timestamp: event.CreatedAt,
		}
		if err := n.sender.Send(ctx, payload); err != nil {
			n.logger.Error("failed to deliver alert webhook",
				"session_id", event.SessionID,
				"rule", event.Rule,
				"error", err,
			)
			failed++
		}
	}

	if n.hub != nil {
		n.hub.BroadcastAlert(event.SessionID, event)
	}

	if failed > 0 {
		return fmt.Errorf("alert delivery failed for %d of %d channels", failed, attempted)
	}

	return nil
}
