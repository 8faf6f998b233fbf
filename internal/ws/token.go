package ws

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when token validation fails
	ErrInvalidToken = errors.New("invalid monitor token")
	// ErrExpiredToken is returned when token is expired
	ErrExpiredToken = errors.New("monitor token expired")
	// ErrInvalidClaims is returned when claims are invalid
	ErrInvalidClaims = errors.New("invalid monitor claims")
)

// MonitorClaims amarra um token de monitor a uma única sessão de prova.
type MonitorClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the short-lived JWTs that authorize a
// websocket monitor for one session.
type TokenService struct {
	secretKey []byte
	issuer    string
	expiresIn time.Duration
}

func NewTokenService(secretKey, issuer string, expiresIn time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		expiresIn: expiresIn,
	}
}

// Generate returns a signed token for the session and its expiry instant.
func (s *TokenService) Generate(sessionID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiresIn)
	claims := MonitorClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate parses and verifies a monitor token.
func (s *TokenService) Validate(tokenString string) (*MonitorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &MonitorClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*MonitorClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.SessionID == uuid.Nil {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
