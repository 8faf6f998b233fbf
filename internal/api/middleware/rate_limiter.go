package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// EndpointRateLimit overrides the default limit for a single path.
type EndpointRateLimit struct {
	Requests int
	Window   time.Duration
}

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Key generator function - returns the API key id from context
	KeyGenerator func(c *fiber.Ctx) string
	// Per-path overrides, matched against the exact request path
	PerEndpoint map[string]EndpointRateLimit
}

// DefaultRateLimiterConfig returns default configuration
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Max:    1000,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			keyID, ok := c.Locals(LocalAPIKeyID).(uuid.UUID)
			if !ok {
				return "anonymous"
			}
			return keyID.String()
		},
	}
}

// FrameRateLimits devolve os overrides por rota de análise. Os endpoints de
// frame recebem um orçamento maior que o padrão porque cada aluno envia um
// frame a cada poucos segundos pela mesma chave; batch é caro e fica curto.
func FrameRateLimits() map[string]EndpointRateLimit {
	return map[string]EndpointRateLimit{
		"/v1/frames/pose":      {Requests: 3000, Window: time.Minute},
		"/v1/frames/attention": {Requests: 3000, Window: time.Minute},
		"/v1/frames/people":    {Requests: 600, Window: time.Minute},
		"/v1/frames/batch":     {Requests: 60, Window: time.Minute},
		"/v1/snapshots":        {Requests: 300, Window: time.Minute},
	}
}

// windowCounter tracks rate limiting state for one bucket
type windowCounter struct {
	count      int
	windowEnd  time.Time
	lastAccess time.Time
	window     time.Duration
}

// RateLimiter implements per-API-key rate limiting with in-memory windows
type RateLimiter struct {
	config   RateLimiterConfig
	counters map[string]*windowCounter
	mu       sync.Mutex
	done     chan struct{}
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Max == 0 {
		config.Max = 1000
	}
	if config.Window == 0 {
		config.Window = time.Minute
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = DefaultRateLimiterConfig().KeyGenerator
	}

	rl := &RateLimiter{
		config:   config,
		counters: make(map[string]*windowCounter),
		done:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// Handler returns the Fiber middleware handler
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := rl.config.KeyGenerator(c)
		if key == "" || key == "anonymous" {
			// Allow anonymous requests to proceed (they'll fail at auth anyway)
			return c.Next()
		}

		max, window, bucket := rl.resolve(key, c.Path())
		now := time.Now()

		rl.mu.Lock()
		counter, exists := rl.counters[bucket]
		if !exists || now.After(counter.windowEnd) {
			counter = &windowCounter{
				windowEnd: now.Add(window),
				window:    window,
			}
			rl.counters[bucket] = counter
		}
		counter.count++
		counter.lastAccess = now
		count := counter.count
		windowEnd := counter.windowEnd
		rl.mu.Unlock()

		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", windowEnd.Format(time.RFC3339))

		if count > max {
			c.Set("Retry-After", strconv.Itoa(int(time.Until(windowEnd).Seconds())))
			return domain.ErrRateLimitExceeded
		}

		return c.Next()
	}
}

// resolve picks the limit for this request. Paths with an override get their
// own bucket per key; everything else shares the key's default bucket.
func (rl *RateLimiter) resolve(key, path string) (int, time.Duration, string) {
	if ep, ok := rl.config.PerEndpoint[path]; ok {
		return ep.Requests, ep.Window, key + ":" + path
	}
	return rl.config.Max, rl.config.Window, key
}

// cleanup removes stale buckets
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for bucket, counter := range rl.counters {
				if now.Sub(counter.lastAccess) > 2*counter.window {
					delete(rl.counters, bucket)
				}
			}
			rl.mu.Unlock()
		}
	}
}
