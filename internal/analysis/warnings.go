package analysis

import (
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// ComposeWarnings monta a lista de avisos legíveis para um veredito de
// direção. Every triggered flag emits its warning, in fixed order (up,
// down, left, right), so a diagonal gaze produces two entries. This is
// intentionally different from EvaluateAttention, which reports a single
// reason by precedence.
func ComposeWarnings(direction domain.HeadDirection) []string {
	var warnings []string

	if direction.LookingUp {
		warnings = append(warnings, "Student is looking UP - possible cheating detected")
	}
	if direction.LookingDown {
		warnings = append(warnings, "Student is looking DOWN - possible cheating detected")
	}
	if direction.LookingLeft {
		warnings = append(warnings, "Student is looking LEFT - possible cheating detected")
	}
	if direction.LookingRight {
		warnings = append(warnings, "Student is looking RIGHT - possible cheating detected")
	}

	if len(warnings) == 0 {
		warnings = append(warnings, "Student is looking at screen - OK")
	}

	return warnings
}
