package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	secret := "test-secret"
	sessionID := uuid.New()

	t.Run("delivers signed event", func(t *testing.T) {
		var gotBody []byte
		var gotHeaders http.Header

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			gotBody = body
			gotHeaders = r.Header.Clone()
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sender := NewSender(server.URL, secret)
		event := EventPayload{
			Type:      EventAlertFired,
			Data:      map[string]string{"rule": "no_face"},
			SessionID: sessionID,
			Timestamp: time.Now().UTC(),
		}

		err := sender.Send(context.Background(), event)
		require.NoError(t, err)

		assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
		assert.Equal(t, EventAlertFired, gotHeaders.Get("X-Vigia-Event"))
		assert.Equal(t, "Vigia-Webhook/1.0", gotHeaders.Get("User-Agent"))

		signature := gotHeaders.Get("X-Vigia-Signature")
		assert.NotEmpty(t, signature)
		assert.True(t, Verify(secret, gotBody, signature), "delivered body should verify against the shared secret")
		assert.Contains(t, string(gotBody), sessionID.String())
	})

	t.Run("returns error on server failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		sender := NewSender(server.URL, secret)
		err := sender.Send(context.Background(), EventPayload{Type: EventAlertFired})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("returns error when endpoint is unreachable", func(t *testing.T) {
		sender := NewSender("http://127.0.0.1:1/webhook", secret)
		err := sender.Send(context.Background(), EventPayload{Type: EventAlertFired})

		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		sender := NewSender(server.URL, secret)
		err := sender.Send(ctx, EventPayload{Type: EventAlertFired})

		require.Error(t, err)
	})
}
