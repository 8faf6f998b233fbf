package analysis

import (
	"strings"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// EvaluateAttention deriva o veredito de atenção a partir do veredito de
// direção. A nil direction means no face was found upstream.
//
// When the gaze deviates, the first matching flag wins, vertical before
// horizontal: up, down, left, right. Horizontal deviation carries high
// severity because looking sideways (a neighbor, a phone) is riskier in a
// proctoring setting than looking at the own desk.
func EvaluateAttention(direction *domain.HeadDirection) *domain.AttentionVerdict {
	if direction == nil {
		return &domain.AttentionVerdict{
			Attention: false,
			Reason:    domain.ReasonNoFace,
			Severity:  domain.SeverityHigh,
			Message:   "No face detected",
		}
	}

	verdict := &domain.AttentionVerdict{
		Attention: direction.LookingStraight,
		Reason:    domain.ReasonAttentive,
		Direction: direction,
		Severity:  domain.SeverityNone,
	}

	switch {
	case direction.LookingUp:
		verdict.Reason = domain.ReasonLookingUp
		verdict.Severity = domain.SeverityMedium
	case direction.LookingDown:
		verdict.Reason = domain.ReasonLookingDown
		verdict.Severity = domain.SeverityMedium
	case direction.LookingLeft:
		verdict.Reason = domain.ReasonLookingLeft
		verdict.Severity = domain.SeverityHigh
	case direction.LookingRight:
		verdict.Reason = domain.ReasonLookingRight
		verdict.Severity = domain.SeverityHigh
	}

	if verdict.Attention {
		verdict.Message = "Student is attentive"
	} else {
		verdict.Message = "Student is " + strings.ReplaceAll(verdict.Reason, "_", " ")
	}

	return verdict
}
