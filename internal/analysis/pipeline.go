package analysis

import (
	"context"
	"fmt"
	"image"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/frames"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
)

// Pipeline orquestra a análise de um frame: face box, landmarks no crop,
// solução de pose e as funções puras de decisão. Detectors are injected
// once at construction and must be safe for concurrent calls; the pipeline
// itself keeps no per-request state.
type Pipeline struct {
	detectors vision.DetectorSet
}

// NewPipeline creates a pipeline over the given detector set.
func NewPipeline(detectors vision.DetectorSet) *Pipeline {
	return &Pipeline{detectors: detectors}
}

// Analyze runs the full per-frame analysis and bundles direction, raw pose
// and composed warnings. When no face is found the terminal payload is
// returned without ever calling the landmark or pose collaborators.
func (p *Pipeline) Analyze(ctx context.Context, frame image.Image) (*domain.FrameAnalysis, error) {
	direction, pose, err := p.solve(ctx, frame)
	if err != nil {
		return nil, err
	}

	if direction == nil {
		return &domain.FrameAnalysis{
			Status:   domain.StatusFaceNotFound,
			Warnings: []string{"No face detected in frame"},
		}, nil
	}

	return &domain.FrameAnalysis{
		Status:        domain.StatusFaceFound,
		HeadDirection: direction,
		Pose:          pose,
		Warnings:      ComposeWarnings(*direction),
	}, nil
}

// CheckAttention runs the same collaborator chain and applies the
// attention policy instead of the warning composer.
func (p *Pipeline) CheckAttention(ctx context.Context, frame image.Image) (*domain.AttentionVerdict, error) {
	direction, _, err := p.solve(ctx, frame)
	if err != nil {
		return nil, err
	}

	return EvaluateAttention(direction), nil
}

// solve executa a cadeia de colaboradores. A nil direction with nil error
// means no face was found. Collaborator failures propagate unrecovered.
func (p *Pipeline) solve(ctx context.Context, frame image.Image) (*domain.HeadDirection, *domain.HeadPose, error) {
	box, err := p.detectors.Faces.DetectFace(ctx, frame)
	if err != nil {
		return nil, nil, fmt.Errorf("detect face: %w", err)
	}

	if box == nil {
		return nil, nil, nil
	}

	crop := frames.Crop(frame, box.Rect())

	marks, err := p.detectors.Marks.DetectMarks(ctx, crop)
	if err != nil {
		return nil, nil, fmt.Errorf("detect marks: %w", err)
	}

	// Landmarks arrive normalized to the crop; map them back into frame
	// pixel space (scale by the crop width, translate by the box origin).
	marks = marks.Rescale(float64(box.Width()), float64(box.X1), float64(box.Y1))

	bounds := frame.Bounds()
	pose, err := p.detectors.Pose.SolvePose(ctx, bounds.Dx(), bounds.Dy(), marks)
	if err != nil {
		return nil, nil, fmt.Errorf("solve pose: %w", err)
	}

	rotation := domain.RotationEstimate{Pitch: pose.Pitch, Yaw: pose.Yaw, Roll: pose.Roll}
	direction := ClassifyDirection(rotation)

	headPose := &domain.HeadPose{
		Rotation:    rotation,
		Translation: domain.TranslationEstimate{X: pose.TX, Y: pose.TY, Z: pose.TZ},
	}

	return &direction, headPose, nil
}
