package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LastUsedUpdater persists the last_used_at timestamp of an API key.
type LastUsedUpdater interface {
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}

// LastUsedWorkerConfig holds configuration for the worker
type LastUsedWorkerConfig struct {
	BufferSize       int           // Channel buffer size (default: 1000)
	DebounceInterval time.Duration // Min interval between updates for same key (default: 1 minute)
	BatchInterval    time.Duration // Interval to process batch (default: 5 seconds)
	MaxBatchSize     int           // Max keys per batch (default: 100)
}

// DefaultLastUsedWorkerConfig returns default configuration
func DefaultLastUsedWorkerConfig() LastUsedWorkerConfig {
	return LastUsedWorkerConfig{
		BufferSize:       1000,
		DebounceInterval: 1 * time.Minute,
		BatchInterval:    5 * time.Second,
		MaxBatchSize:     100,
	}
}

// LastUsedWorker atualiza last_used_at das API keys em segundo plano.
// Cada frame analisado passa pelo auth, então as escritas são agrupadas
// em lotes e deduplicadas por chave dentro do intervalo de debounce.
type LastUsedWorker struct {
	repo   LastUsedUpdater
	logger *slog.Logger

	updateCh chan uuid.UUID

	recent map[uuid.UUID]time.Time
	mu     sync.RWMutex

	debounce   time.Duration
	flushEvery time.Duration
	maxBatch   int

	done chan struct{}
	wg   sync.WaitGroup
}

// NewLastUsedWorker creates a new worker
func NewLastUsedWorker(repo LastUsedUpdater, logger *slog.Logger, config LastUsedWorkerConfig) *LastUsedWorker {
	if config.BufferSize == 0 {
		config.BufferSize = 1000
	}
	if config.DebounceInterval == 0 {
		config.DebounceInterval = 1 * time.Minute
	}
	if config.BatchInterval == 0 {
		config.BatchInterval = 5 * time.Second
	}
	if config.MaxBatchSize == 0 {
		config.MaxBatchSize = 100
	}

	return &LastUsedWorker{
		repo:       repo,
		logger:     logger,
		updateCh:   make(chan uuid.UUID, config.BufferSize),
		recent:     make(map[uuid.UUID]time.Time),
		debounce:   config.DebounceInterval,
		flushEvery: config.BatchInterval,
		maxBatch:   config.MaxBatchSize,
		done:       make(chan struct{}),
	}
}

// Start begins the background worker
func (w *LastUsedWorker) Start() {
	w.wg.Add(1)
	go w.run()
	w.logger.Info("last used worker started",
		slog.Int("buffer_size", cap(w.updateCh)),
		slog.Duration("debounce_interval", w.debounce),
		slog.Duration("batch_interval", w.flushEvery),
	)
}

// Stop drains the pending batch and shuts the worker down.
func (w *LastUsedWorker) Stop() {
	close(w.done)
	w.wg.Wait()
	w.logger.Info("last used worker stopped")
}

// Enqueue adds an API key ID for async last_used update.
// Non-blocking: if the buffer is full, the update is dropped.
func (w *LastUsedWorker) Enqueue(keyID uuid.UUID) {
	w.mu.RLock()
	last, seen := w.recent[keyID]
	w.mu.RUnlock()

	if seen && time.Since(last) < w.debounce {
		return
	}

	select {
	case w.updateCh <- keyID:
	default:
		// Perder um last_used não é crítico.
		w.logger.Debug("last used update dropped, buffer full", slog.String("key_id", keyID.String()))
	}
}

func (w *LastUsedWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.flushEvery)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(5 * time.Minute)
	defer cleanupTicker.Stop()

	var batch []uuid.UUID

	for {
		select {
		case <-w.done:
			// Flush whatever is pending before exiting.
			w.flush(batch)
			return

		case keyID := <-w.updateCh:
			batch = append(batch, keyID)
			if len(batch) >= w.maxBatch {
				w.flush(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}

		case <-cleanupTicker.C:
			w.expireRecent()
		}
	}
}

func (w *LastUsedWorker) flush(keyIDs []uuid.UUID) {
	if len(keyIDs) == 0 {
		return
	}

	seen := make(map[uuid.UUID]struct{}, len(keyIDs))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var updated int
	for _, keyID := range keyIDs {
		if _, dup := seen[keyID]; dup {
			continue
		}
		seen[keyID] = struct{}{}

		if err := w.repo.UpdateLastUsed(ctx, keyID); err != nil {
			w.logger.Error("failed to update last used",
				slog.String("key_id", keyID.String()),
				slog.Any("error", err),
			)
			continue
		}

		w.mu.Lock()
		w.recent[keyID] = time.Now()
		w.mu.Unlock()

		updated++
	}

	if updated > 0 {
		w.logger.Debug("batch last used update", slog.Int("count", updated))
	}
}

func (w *LastUsedWorker) expireRecent() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for keyID, last := range w.recent {
		if now.Sub(last) > 2*w.debounce {
			delete(w.recent, keyID)
		}
	}
}
