package analysis

import (
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// Rotation thresholds, in radians.
const (
	PitchThreshold = 0.3 // ~17 degrees
	YawThreshold   = 0.4 // ~23 degrees
)

// ClassifyDirection converte uma estimativa de rotação em um veredito
// estruturado de direção. Pure and total over any float input; NaN fails
// every comparison and classifies as straight, infinities land past a
// threshold like any large angle.
//
// Sign convention: negative pitch tilts the head up, negative yaw turns it
// toward the subject's own right.
func ClassifyDirection(rotation domain.RotationEstimate) domain.HeadDirection {
	direction := domain.HeadDirection{
		Pitch: rotation.Pitch,
		Yaw:   rotation.Yaw,
		Roll:  rotation.Roll,
	}

	// Vertical axis
	if rotation.Pitch < -PitchThreshold {
		direction.LookingUp = true
	} else if rotation.Pitch > PitchThreshold {
		direction.LookingDown = true
	}

	// Horizontal axis, evaluated independently of the vertical one so a
	// diagonal gaze keeps both flags
	if rotation.Yaw < -YawThreshold {
		direction.LookingRight = true
	} else if rotation.Yaw > YawThreshold {
		direction.LookingLeft = true
	}

	direction.LookingStraight = !direction.Deviating()

	return direction
}
