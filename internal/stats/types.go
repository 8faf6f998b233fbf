package stats

import (
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// ReasonBreakdown counts observations per inattention reason
type ReasonBreakdown struct {
	LookingUp    int `json:"looking_up"`
	LookingDown  int `json:"looking_down"`
	LookingLeft  int `json:"looking_left"`
	LookingRight int `json:"looking_right"`
	NoFace       int `json:"no_face"`
}

// ObservationTotals aggregates the observations recorded for a session
type ObservationTotals struct {
	Total     int             `json:"total"`
	Attentive int             `json:"attentive"`
	Breakdown ReasonBreakdown `json:"breakdown"`
}

// SessionReport consolida uma sessão de prova para revisão do fiscal:
// totais de observação, taxa de atenção e os alertas disparados.
type SessionReport struct {
	Session         domain.ExamSession  `json:"session"`
	Observations    ObservationTotals   `json:"observations"`
	AttentionRate   float64             `json:"attention_rate"`
	DurationSeconds float64             `json:"duration_seconds"`
	Alerts          []domain.AlertEvent `json:"alerts"`
	GeneratedAt     time.Time           `json:"generated_at"`
}
