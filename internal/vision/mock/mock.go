package mock

import (
	"context"
	"errors"
	"image"
	"math"

	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
)

// Detectors implementa o DetectorSet completo para desenvolvimento e
// testes, sem depender do sidecar de inferência. Every answer is
// deterministic: a centered face box, a ring of synthetic landmarks and a
// straight-ahead pose.
type Detectors struct{}

// New cria o conjunto de detectores simulados
func New() vision.DetectorSet {
	d := &Detectors{}
	return vision.DetectorSet{
		Faces:  d,
		Marks:  d,
		Pose:   d,
		People: d,
	}
}

// DetectFace simula a detecção: frames minúsculos não contêm face, os
// demais recebem um box central cobrindo 60% do frame.
func (d *Detectors) DetectFace(ctx context.Context, img image.Image) (*vision.FaceBox, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w < 32 || h < 32 {
		return nil, nil
	}

	return &vision.FaceBox{
		X1: bounds.Min.X + w/5,
		Y1: bounds.Min.Y + h/5,
		X2: bounds.Min.X + w*4/5,
		Y2: bounds.Min.Y + h*4/5,
	}, nil
}

// DetectMarks devolve 68 pontos sintéticos em anel, normalizados ao crop
func (d *Detectors) DetectMarks(ctx context.Context, face image.Image) (vision.LandmarkSet, error) {
	marks := make(vision.LandmarkSet, vision.LandmarkCount)
	for i := range marks {
		angle := 2 * math.Pi * float64(i) / float64(vision.LandmarkCount)
		marks[i] = vision.Landmark{
			X: 0.5 + 0.3*math.Cos(angle),
			Y: 0.5 + 0.3*math.Sin(angle),
		}
	}
	return marks, nil
}

// SolvePose devolve uma pose olhando para a tela
func (d *Detectors) SolvePose(ctx context.Context, width, height int, marks vision.LandmarkSet) (*vision.Pose, error) {
	if len(marks) != vision.LandmarkCount {
		return nil, errors.New("mock: expected 68 landmarks")
	}

	return &vision.Pose{
		Pitch: 0.01,
		Yaw:   -0.02,
		Roll:  0.0,
		TX:    float64(width) / 2,
		TY:    float64(height) / 2,
		TZ:    -300,
	}, nil
}

// CountPeople simula contagem de pessoas (sempre uma)
func (d *Detectors) CountPeople(ctx context.Context, img image.Image) (int, error) {
	return 1, nil
}

var (
	_ vision.FaceDetector     = (*Detectors)(nil)
	_ vision.LandmarkDetector = (*Detectors)(nil)
	_ vision.PoseSolver       = (*Detectors)(nil)
	_ vision.PeopleCounter    = (*Detectors)(nil)
)
