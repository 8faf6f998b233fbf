package domain

// Attention reasons
const (
	ReasonAttentive    = "attentive"
	ReasonLookingUp    = "looking_up"
	ReasonLookingDown  = "looking_down"
	ReasonLookingLeft  = "looking_left"
	ReasonLookingRight = "looking_right"
	ReasonNoFace       = "no_face"
)

// Severity levels, ordered none < medium < high
const (
	SeverityNone   = "none"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// AttentionVerdict é o veredito de atenção derivado de uma HeadDirection.
// Direction is omitted when no face was found.
type AttentionVerdict struct {
	Attention bool           `json:"attention"`
	Reason    string         `json:"reason"`
	Direction *HeadDirection `json:"direction,omitempty"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
}

// Analysis status values
const (
	StatusFaceFound    = "face_found"
	StatusFaceNotFound = "face_not_found"
)

// FrameAnalysis is the full per-frame analysis payload: direction verdict,
// raw pose and composed warnings. HeadDirection and Pose are nil on the
// face_not_found terminal path.
type FrameAnalysis struct {
	Status        string         `json:"status"`
	HeadDirection *HeadDirection `json:"head_direction"`
	Pose          *HeadPose      `json:"pose,omitempty"`
	Warnings      []string       `json:"warnings"`
}

// FaceFound reports whether the analysis located a face.
func (a FrameAnalysis) FaceFound() bool {
	return a.Status == StatusFaceFound
}
