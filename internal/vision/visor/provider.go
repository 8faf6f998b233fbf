package visor

import (
	"context"
	"fmt"
	"image"

	"github.com/saturnino-fabrica-de-software/vigia/internal/frames"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
)

// peopleScoreThreshold is the minimum detection score for counting a person
const peopleScoreThreshold = 0.5

// Provider implementa os quatro colaboradores de visão sobre o sidecar
// visor. Malformed payloads are surfaced as errors, never silently
// coerced.
type Provider struct {
	client *Client
}

// NewProvider creates a new visor provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// DetectFace localiza a face mais proeminente do frame. Nil box means no
// face, which is a valid outcome rather than an error.
func (p *Provider) DetectFace(ctx context.Context, img image.Image) (*vision.FaceBox, error) {
	encoded, err := frames.EncodeBase64(img)
	if err != nil {
		return nil, fmt.Errorf("detect face: %w", err)
	}

	resp, err := p.client.DetectFace(ctx, encoded)
	if err != nil {
		return nil, fmt.Errorf("detect face: %w", err)
	}

	if !resp.Found {
		return nil, nil
	}

	if len(resp.Box) != 4 {
		return nil, fmt.Errorf("%w: got %d coordinates", ErrBadBox, len(resp.Box))
	}

	return &vision.FaceBox{
		X1: resp.Box[0],
		Y1: resp.Box[1],
		X2: resp.Box[2],
		Y2: resp.Box[3],
	}, nil
}

// DetectMarks extrai os 68 pontos do crop da face
func (p *Provider) DetectMarks(ctx context.Context, face image.Image) (vision.LandmarkSet, error) {
	encoded, err := frames.EncodeBase64(face)
	if err != nil {
		return nil, fmt.Errorf("detect marks: %w", err)
	}

	resp, err := p.client.DetectMarks(ctx, encoded)
	if err != nil {
		return nil, fmt.Errorf("detect marks: %w", err)
	}

	if len(resp.Marks) != vision.LandmarkCount {
		return nil, fmt.Errorf("%w: got %d points", ErrBadLandmarks, len(resp.Marks))
	}

	marks := make(vision.LandmarkSet, len(resp.Marks))
	for i, m := range resp.Marks {
		if len(m) != 2 {
			return nil, fmt.Errorf("%w: point %d has %d coordinates", ErrBadLandmarks, i, len(m))
		}
		marks[i] = vision.Landmark{X: m[0], Y: m[1]}
	}

	return marks, nil
}

// SolvePose resolve a pose da cabeça a partir dos landmarks
func (p *Provider) SolvePose(ctx context.Context, width, height int, marks vision.LandmarkSet) (*vision.Pose, error) {
	req := SolvePoseRequest{
		Width:  width,
		Height: height,
		Marks:  make([][]float64, len(marks)),
	}
	for i, m := range marks {
		req.Marks[i] = []float64{m.X, m.Y}
	}

	resp, err := p.client.SolvePose(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("solve pose: %w", err)
	}

	if len(resp.Rotation) != 3 || len(resp.Translation) != 3 {
		return nil, fmt.Errorf("%w: rotation has %d components, translation %d",
			ErrBadPose, len(resp.Rotation), len(resp.Translation))
	}

	return &vision.Pose{
		Pitch: resp.Rotation[0],
		Yaw:   resp.Rotation[1],
		Roll:  resp.Rotation[2],
		TX:    resp.Translation[0],
		TY:    resp.Translation[1],
		TZ:    resp.Translation[2],
	}, nil
}

// CountPeople conta pessoas no frame completo
func (p *Provider) CountPeople(ctx context.Context, img image.Image) (int, error) {
	encoded, err := frames.EncodeBase64(img)
	if err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}

	resp, err := p.client.CountPeople(ctx, encoded, peopleScoreThreshold)
	if err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}

	if resp.People < 0 {
		return 0, fmt.Errorf("%w: negative people count", ErrInvalidResponse)
	}

	return resp.People, nil
}

// Health checks sidecar readiness.
func (p *Provider) Health(ctx context.Context) error {
	return p.client.Health(ctx)
}

var (
	_ vision.FaceDetector     = (*Provider)(nil)
	_ vision.LandmarkDetector = (*Provider)(nil)
	_ vision.PoseSolver       = (*Provider)(nil)
	_ vision.PeopleCounter    = (*Provider)(nil)
)
