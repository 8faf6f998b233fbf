package ws

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventObservationRecorded EventType = "observation.recorded"
	EventAlertTriggered      EventType = "alert.triggered"
	EventSessionClosed       EventType = "session.closed"
)

// Event é o envelope enviado aos monitores. O SessionID roteia o evento
// dentro do hub e não aparece no payload.
type Event struct {
	SessionID uuid.UUID   `json:"-"`
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
