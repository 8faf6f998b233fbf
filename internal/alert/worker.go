package alert

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sessions with no observations for this long have their windows dropped.
const idleSessionTTL = 5 * time.Minute

// Worker varre periodicamente o motor de alertas para descartar janelas de
// sessões que pararam de enviar frames sem serem encerradas.
type Worker struct {
	engine   *Engine
	logger   *slog.Logger
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewWorker(engine *Engine, logger *slog.Logger, interval time.Duration) *Worker {
	if interval == 0 {
		interval = 30 * time.Second
	}

	return &Worker{
		engine:   engine,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("alert worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("alert worker stopped")
			return
		case <-w.done:
			w.logger.Info("alert worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// Stop is safe to call more than once and alongside context cancellation.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

func (w *Worker) sweep() {
	dropped := w.engine.Sweep(idleSessionTTL)
	if dropped > 0 {
		w.logger.Debug("swept idle alert windows", "sessions", dropped)
	}
}
