package alert

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type windowKey struct {
	sessionID uuid.UUID
	rule      string
}

// Engine mantém, em memória, uma janela deslizante por (sessão, regra) e
// decide na hora de cada observação se alguma regra disparou. O estado de
// sessões encerradas ou abandonadas é removido por ForgetSession e Sweep.
type Engine struct {
	rules []Rule

	mu        sync.Mutex
	windows   map[windowKey][]time.Time
	lastFired map[windowKey]time.Time
	lastSeen  map[uuid.UUID]time.Time

	now func() time.Time
}

// NewEngine creates an engine with the given rules, falling back to
// DefaultRules when none are provided.
func NewEngine(rules []Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	return &Engine{
		rules:     rules,
		windows:   make(map[windowKey][]time.Time),
		lastFired: make(map[windowKey]time.Time),
		lastSeen:  make(map[uuid.UUID]time.Time),
		now:       time.Now,
	}
}

// Observe registra a razão de uma observação e devolve os alertas que ela
// fez disparar, já prontos para persistência e notificação.
func (e *Engine) Observe(sessionID uuid.UUID, reason string) []domain.AlertEvent {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastSeen[sessionID] = now

	var events []domain.AlertEvent
	for _, rule := range e.rules {
		if !rule.Matches(reason) {
			continue
		}

		key := windowKey{sessionID: sessionID, rule: rule.Name}
		window := pruneWindow(append(e.windows[key], now), now.Add(-rule.Window))
		e.windows[key] = window

		if len(window) < rule.MinCount {
			continue
		}

		if last, ok := e.lastFired[key]; ok && now.Sub(last) < rule.Cooldown {
			continue
		}

		e.lastFired[key] = now
		events = append(events, domain.AlertEvent{
			ID:        uuid.New(),
			SessionID: sessionID,
			Rule:      rule.Name,
			Severity:  rule.Severity,
			Message:   fmt.Sprintf("%s (%d occurrences in %s)", rule.Message, len(window), rule.Window),
			Count:     len(window),
			CreatedAt: now,
		})
	}

	return events
}

// ForgetSession drops all window state for a session, typically on close.
func (e *Engine) ForgetSession(sessionID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.lastSeen, sessionID)
	for key := range e.windows {
		if key.sessionID == sessionID {
			delete(e.windows, key)
		}
	}
	for key := range e.lastFired {
		if key.sessionID == sessionID {
			delete(e.lastFired, key)
		}
	}
}

// Sweep removes state for sessions idle longer than maxIdle and returns how
// many sessions were dropped.
func (e *Engine) Sweep(maxIdle time.Duration) int {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	var stale []uuid.UUID
	for sessionID, seen := range e.lastSeen {
		if now.Sub(seen) > maxIdle {
			stale = append(stale, sessionID)
		}
	}

	for _, sessionID := range stale {
		delete(e.lastSeen, sessionID)
		for key := range e.windows {
			if key.sessionID == sessionID {
				delete(e.windows, key)
			}
		}
		for key := range e.lastFired {
			if key.sessionID == sessionID {
				delete(e.lastFired, key)
			}
		}
	}

	return len(stale)
}

// pruneWindow discards timestamps at or before cutoff. The slice is already
// ordered because observations enter with a monotonic clock.
func pruneWindow(window []time.Time, cutoff time.Time) []time.Time {
	first := 0
	for first < len(window) && !window[first].After(cutoff) {
		first++
	}

	if first == 0 {
		return window
	}
	return append(window[:0], window[first:]...)
}
