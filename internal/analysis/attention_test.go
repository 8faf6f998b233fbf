package analysis

import (
	"testing"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

func TestEvaluateAttention_NoFace(t *testing.T) {
	got := EvaluateAttention(nil)

	if got.Attention {
		t.Errorf("Attention = true, want false")
	}
	if got.Reason != domain.ReasonNoFace {
		t.Errorf("Reason = %q, want %q", got.Reason, domain.ReasonNoFace)
	}
	if got.Severity != domain.SeverityHigh {
		t.Errorf("Severity = %q, want %q", got.Severity, domain.SeverityHigh)
	}
	if got.Message != "No face detected" {
		t.Errorf("Message = %q, want %q", got.Message, "No face detected")
	}
	if got.Direction != nil {
		t.Errorf("Direction = %+v, want nil", got.Direction)
	}
}

func TestEvaluateAttention(t *testing.T) {
	tests := []struct {
		name         string
		direction    domain.HeadDirection
		wantAttn     bool
		wantReason   string
		wantSeverity string
		wantMessage  string
	}{
		{
			name:         "attentive",
			direction:    domain.HeadDirection{LookingStraight: true},
			wantAttn:     true,
			wantReason:   domain.ReasonAttentive,
			wantSeverity: domain.SeverityNone,
			wantMessage:  "Student is attentive",
		},
		{
			name:         "looking up is medium",
			direction:    domain.HeadDirection{LookingUp: true},
			wantReason:   domain.ReasonLookingUp,
			wantSeverity: domain.SeverityMedium,
			wantMessage:  "Student is looking up",
		},
		{
			name:         "looking down is medium",
			direction:    domain.HeadDirection{LookingDown: true},
			wantReason:   domain.ReasonLookingDown,
			wantSeverity: domain.SeverityMedium,
			wantMessage:  "Student is looking down",
		},
		{
			name:         "looking left is high",
			direction:    domain.HeadDirection{LookingLeft: true},
			wantReason:   domain.ReasonLookingLeft,
			wantSeverity: domain.SeverityHigh,
			wantMessage:  "Student is looking left",
		},
		{
			name:         "looking right is high",
			direction:    domain.HeadDirection{LookingRight: true},
			wantReason:   domain.ReasonLookingRight,
			wantSeverity: domain.SeverityHigh,
			wantMessage:  "Student is looking right",
		},
		{
			name:         "vertical wins over horizontal",
			direction:    domain.HeadDirection{LookingUp: true, LookingLeft: true},
			wantReason:   domain.ReasonLookingUp,
			wantSeverity: domain.SeverityMedium,
			wantMessage:  "Student is looking up",
		},
		{
			name:         "down wins over right",
			direction:    domain.HeadDirection{LookingDown: true, LookingRight: true},
			wantReason:   domain.ReasonLookingDown,
			wantSeverity: domain.SeverityMedium,
			wantMessage:  "Student is looking down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direction := tt.direction
			got := EvaluateAttention(&direction)

			if got.Attention != tt.wantAttn {
				t.Errorf("Attention = %v, want %v", got.Attention, tt.wantAttn)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", got.Severity, tt.wantSeverity)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.Direction == nil || *got.Direction != direction {
				t.Errorf("Direction not carried through: %+v", got.Direction)
			}
		})
	}
}
