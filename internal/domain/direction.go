package domain

// HeadDirection é o veredito estruturado de direção do olhar derivado de
// uma RotationEstimate. The raw angles are carried through so callers can
// log and persist them.
//
// Invariants: LookingStraight is true iff no directional flag is set; the
// vertical flags are mutually exclusive, as are the horizontal ones. A
// diagonal gaze may set one vertical and one horizontal flag at once.
type HeadDirection struct {
	LookingUp       bool    `json:"looking_up"`
	LookingDown     bool    `json:"looking_down"`
	LookingLeft     bool    `json:"looking_left"`
	LookingRight    bool    `json:"looking_right"`
	LookingStraight bool    `json:"looking_straight"`
	Pitch           float64 `json:"pitch"`
	Yaw             float64 `json:"yaw"`
	Roll            float64 `json:"roll"`
}

// Deviating reports whether any directional flag is set.
func (d HeadDirection) Deviating() bool {
	return d.LookingUp || d.LookingDown || d.LookingLeft || d.LookingRight
}
