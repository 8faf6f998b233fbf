// Package alert avalia regras sobre janelas deslizantes de observações por
// sessão e dispara eventos quando um comportamento se sustenta por tempo
// suficiente para merecer a atenção do fiscal.
package alert

import (
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// Rule names
const (
	RuleSustainedInattention = "sustained_inattention"
	RuleNoFace               = "no_face"
	RuleHorizontalGaze       = "horizontal_gaze"
)

// Rule dispara quando Reasons ocorrem MinCount vezes dentro de Window.
// Cooldown segura novos disparos da mesma regra para a mesma sessão.
type Rule struct {
	Name     string
	Reasons  []string
	MinCount int
	Window   time.Duration
	Cooldown time.Duration
	Severity string
	Message  string
}

// Matches reports whether an observation reason counts toward this rule.
func (r Rule) Matches(reason string) bool {
	for _, candidate := range r.Reasons {
		if candidate == reason {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in proctoring rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: RuleSustainedInattention,
			Reasons: []string{
				domain.ReasonLookingUp,
				domain.ReasonLookingDown,
				domain.ReasonLookingLeft,
				domain.ReasonLookingRight,
				domain.ReasonNoFace,
			},
			MinCount: 8,
			Window:   15 * time.Second,
			Cooldown: 30 * time.Second,
			Severity: domain.AlertWarning,
			Message:  "Sustained inattention detected",
		},
		{
			Name:     RuleNoFace,
			Reasons:  []string{domain.ReasonNoFace},
			MinCount: 5,
			Window:   10 * time.Second,
			Cooldown: 30 * time.Second,
			Severity: domain.AlertCritical,
			Message:  "Student face not visible",
		},
		{
			Name: RuleHorizontalGaze,
			Reasons: []string{
				domain.ReasonLookingLeft,
				domain.ReasonLookingRight,
			},
			MinCount: 5,
			Window:   10 * time.Second,
			Cooldown: 30 * time.Second,
			Severity: domain.AlertCritical,
			Message:  "Repeated horizontal gaze away from screen",
		},
	}
}
