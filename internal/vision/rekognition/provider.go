package rekognition

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/vigia/internal/frames"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageSize is the minimum image size for valid processing
	minImageSize = 100

	personLabel = "Person"
)

const (
	errCodeAccessDenied       = "AccessDeniedException"
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeImageTooLarge      = "ImageTooLargeException"
	errCodeThrottling         = "ThrottlingException"
)

// API is the subset of the AWS Rekognition client used by the provider.
// Tests substitute it to exercise the mapping without AWS calls.
type API interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Provider implements face detection and people counting on top of AWS
// Rekognition. It covers only the detectors the AWS APIs can serve; facial
// landmarks and pose solving stay with the visor service.
type Provider struct {
	api API
	cfg Config
}

// Ensure Provider implements the vision interfaces at compile time
var (
	_ vision.FaceDetector  = (*Provider)(nil)
	_ vision.PeopleCounter = (*Provider)(nil)
)

// NewProvider creates a Rekognition-backed provider using the AWS default
// credential chain
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Provider{
		api: rekognition.NewFromConfig(awsCfg),
		cfg: cfg,
	}, nil
}

// validateImage checks if the encoded frame is valid for Rekognition processing
func validateImage(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidImage
	}
	if len(data) < minImageSize {
		return fmt.Errorf("%w: image too small (%d bytes, minimum %d)", ErrInvalidImage, len(data), minImageSize)
	}
	if len(data) > maxImageSize {
		return fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, len(data), maxImageSize)
	}
	return nil
}

// DetectFace finds the primary face in the frame using the DetectFaces API.
// Rekognition returns coordinates relative to the image dimensions; they are
// converted to pixels in the frame's coordinate space. Returns (nil, nil)
// when no face is present.
func (p *Provider) DetectFace(ctx context.Context, img image.Image) (*vision.FaceBox, error) {
	data, err := frames.EncodeJPEG(img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	if err := validateImage(data); err != nil {
		return nil, err
	}

	input := &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: data},
		Attributes: []types.Attribute{types.AttributeDefault},
	}

	output, err := p.api.DetectFaces(ctx, input)
	if err != nil {
		return nil, translateError("detect faces", err)
	}

	if len(output.FaceDetails) == 0 {
		return nil, nil
	}

	best := bestFace(output.FaceDetails)
	if best.BoundingBox == nil {
		return nil, nil
	}

	return relativeToPixels(best.BoundingBox, img.Bounds()), nil
}

// CountPeople counts person instances in the frame using the DetectLabels
// API. Only instances at or above the configured confidence are counted.
func (p *Provider) CountPeople(ctx context.Context, img image.Image) (int, error) {
	data, err := frames.EncodeJPEG(img)
	if err != nil {
		return 0, fmt.Errorf("encode frame: %w", err)
	}
	if err := validateImage(data); err != nil {
		return 0, err
	}

	input := &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MinConfidence: aws.Float32(p.cfg.MinConfidence),
	}

	output, err := p.api.DetectLabels(ctx, input)
	if err != nil {
		return 0, translateError("detect labels", err)
	}

	for _, label := range output.Labels {
		if aws.ToString(label.Name) != personLabel {
			continue
		}
		return len(label.Instances), nil
	}

	return 0, nil
}

// bestFace picks the detection with the highest confidence. Proctoring frames
// are expected to hold a single student; extra detections are ignored here
// and surface through people counting instead.
func bestFace(details []types.FaceDetail) types.FaceDetail {
	best := details[0]
	for _, d := range details[1:] {
		if aws.ToFloat32(d.Confidence) > aws.ToFloat32(best.Confidence) {
			best = d
		}
	}
	return best
}

// relativeToPixels converts a Rekognition bounding box into pixel
// coordinates, clamped to the frame bounds
func relativeToPixels(box *types.BoundingBox, bounds image.Rectangle) *vision.FaceBox {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	left := float64(aws.ToFloat32(box.Left))
	top := float64(aws.ToFloat32(box.Top))
	width := float64(aws.ToFloat32(box.Width))
	height := float64(aws.ToFloat32(box.Height))

	return &vision.FaceBox{
		X1: clamp(int(left*w), 0, bounds.Dx()),
		Y1: clamp(int(top*h), 0, bounds.Dy()),
		X2: clamp(int((left+width)*w), 0, bounds.Dx()),
		Y2: clamp(int((top+height)*h), 0, bounds.Dy()),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// translateError maps AWS API errors onto the package sentinels
func translateError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeAccessDenied:
			return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		case errCodeInvalidImageFormat, errCodeImageTooLarge:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidImage, apiErr.ErrorMessage())
		case errCodeThrottling:
			return fmt.Errorf("%s: %w", op, ErrThrottled)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
