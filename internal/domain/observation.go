package domain

import (
	"time"

	"github.com/google/uuid"
)

// Observation é o registro persistido de um frame analisado dentro de uma
// sessão. The angles are nil on the face_not_found path.
type Observation struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Attention bool      `json:"attention"`
	Reason    string    `json:"reason"`
	Severity  string    `json:"severity"`
	Pitch     *float64  `json:"pitch,omitempty"`
	Yaw       *float64  `json:"yaw,omitempty"`
	Roll      *float64  `json:"roll,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewObservation builds an observation from an attention verdict. The
// direction angles are copied when present.
func NewObservation(sessionID uuid.UUID, verdict *AttentionVerdict) *Observation {
	obs := &Observation{
		SessionID: sessionID,
		Status:    StatusFaceNotFound,
		Attention: verdict.Attention,
		Reason:    verdict.Reason,
		Severity:  verdict.Severity,
	}

	if verdict.Direction != nil {
		obs.Status = StatusFaceFound
		pitch, yaw, roll := verdict.Direction.Pitch, verdict.Direction.Yaw, verdict.Direction.Roll
		obs.Pitch = &pitch
		obs.Yaw = &yaw
		obs.Roll = &roll
	}

	return obs
}
