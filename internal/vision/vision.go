package vision

import (
	"context"
	"image"
)

// LandmarkCount is the reference facial landmark configuration.
const LandmarkCount = 68

// FaceDetector define a interface para localização de face em um frame
type FaceDetector interface {
	// DetectFace localiza a face mais proeminente no frame.
	// Retorna nil quando nenhuma face é encontrada; isso não é erro.
	DetectFace(ctx context.Context, img image.Image) (*FaceBox, error)
}

// LandmarkDetector extracts the 68-point landmark set from a face crop.
// Coordinates come back normalized to [0,1] within the crop.
type LandmarkDetector interface {
	DetectMarks(ctx context.Context, face image.Image) (LandmarkSet, error)
}

// PoseSolver solves head pose from 68 landmarks in image pixel space.
// Width and height are the full frame dimensions the solver needs for its
// camera matrix.
type PoseSolver interface {
	SolvePose(ctx context.Context, width, height int, marks LandmarkSet) (*Pose, error)
}

// PeopleCounter counts persons in the full frame.
type PeopleCounter interface {
	CountPeople(ctx context.Context, img image.Image) (int, error)
}

// Pose is the raw solver output: rotation angles in radians plus the
// translation vector.
type Pose struct {
	Pitch float64 `json:"pitch"` // up/down rotation
	Yaw   float64 `json:"yaw"`   // left/right rotation
	Roll  float64 `json:"roll"`  // tilted rotation
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
	TZ    float64 `json:"tz"`
}

// FaceBox representa a área da face no frame, em pixels
type FaceBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the box width in pixels.
func (b FaceBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b FaceBox) Height() int {
	return b.Y2 - b.Y1
}

// Rect converts the box to an image.Rectangle.
func (b FaceBox) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Landmark is a single 2D facial keypoint.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet is the ordered 68-point landmark sequence.
type LandmarkSet []Landmark

// Rescale maps crop-normalized landmarks into image pixel space: every
// coordinate is multiplied by scale, then the crop offset is added.
func (s LandmarkSet) Rescale(scale, offsetX, offsetY float64) LandmarkSet {
	out := make(LandmarkSet, len(s))
	for i, m := range s {
		out[i] = Landmark{
			X: m.X*scale + offsetX,
			Y: m.Y*scale + offsetY,
		}
	}
	return out
}

// DetectorSet agrupa os colaboradores de visão usados pelo pipeline.
// Detectors are initialized once at startup and must be safe for
// concurrent use.
type DetectorSet struct {
	Faces  FaceDetector
	Marks  LandmarkDetector
	Pose   PoseSolver
	People PeopleCounter
}
