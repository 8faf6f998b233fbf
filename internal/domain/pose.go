package domain

// RotationEstimate holds the three head rotation angles, in radians,
// produced by the pose solver.
type RotationEstimate struct {
	Pitch float64 `json:"pitch"` // X-axis, up/down
	Yaw   float64 `json:"yaw"`   // Y-axis, left/right
	Roll  float64 `json:"roll"`  // Z-axis, tilt
}

// Vector returns the rotation as [pitch, yaw, roll].
func (r RotationEstimate) Vector() []float64 {
	return []float64{r.Pitch, r.Yaw, r.Roll}
}

// TranslationEstimate holds the head translation vector produced by the
// pose solver. Carried through for observability, never part of any
// decision.
type TranslationEstimate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector returns the translation as [x, y, z].
func (t TranslationEstimate) Vector() []float64 {
	return []float64{t.X, t.Y, t.Z}
}

// HeadPose agrupa o resultado bruto do solver de pose
type HeadPose struct {
	Rotation    RotationEstimate    `json:"rotation"`
	Translation TranslationEstimate `json:"translation"`
}
