package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

const (
	// LocalAPIKeyID is the key to retrieve the authenticated key id from context
	LocalAPIKeyID = "api_key_id"
	// LocalAPIKey is the key to retrieve the full API key from context
	LocalAPIKey = "api_key"
)

// APIKeyRepository interface for API key lookup
type APIKeyRepository interface {
	GetByHash(ctx context.Context, hash string) (*domain.APIKey, error)
}

// AuthDependencies carries what the auth middleware needs.
type AuthDependencies struct {
	APIKeyRepo     APIKeyRepository
	Logger         *slog.Logger
	LastUsedWorker *LastUsedWorker
}

// Auth creates an authentication middleware using API Key
func Auth(deps AuthDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Extract Bearer token
		apiKey := extractBearerToken(c)
		if apiKey == "" {
			return domain.ErrUnauthorized
		}

		// 2. Reject malformed keys before touching the database
		if !domain.IsValidFormat(apiKey) {
			return domain.ErrUnauthorized
		}

		// 3. Lookup key by hash
		key, err := deps.APIKeyRepo.GetByHash(c.Context(), domain.HashAPIKey(apiKey))
		if err != nil {
			// Not found and DB errors both map to 401;
			// não revelamos se a chave existe ou não.
			if deps.Logger != nil && !errors.Is(err, domain.ErrAPIKeyNotFound) {
				deps.Logger.Warn("api key lookup failed", slog.Any("error", err))
			}
			return domain.ErrUnauthorized
		}

		// 4. Verify key is active
		if !key.IsActive {
			return domain.ErrUnauthorized
		}

		// 5. Record usage without blocking the request
		if deps.LastUsedWorker != nil {
			deps.LastUsedWorker.Enqueue(key.ID)
		}

		// 6. Set key in context
		c.Locals(LocalAPIKeyID, key.ID)
		c.Locals(LocalAPIKey, key)

		return c.Next()
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetAPIKeyID retrieves the authenticated key id from Fiber context
func GetAPIKeyID(c *fiber.Ctx) (uuid.UUID, error) {
	keyID, ok := c.Locals(LocalAPIKeyID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return keyID, nil
}

// GetAPIKey retrieves the full API key from Fiber context
func GetAPIKey(c *fiber.Ctx) (*domain.APIKey, error) {
	key, ok := c.Locals(LocalAPIKey).(*domain.APIKey)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return key, nil
}
