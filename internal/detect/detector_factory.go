package detect

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/vigia/internal/config"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision/mock"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision/rekognition"
	"github.com/saturnino-fabrica-de-software/vigia/internal/vision/visor"
)

// ProviderType defines supported vision provider types
type ProviderType string

const (
	// ProviderTypeVisor is the visor inference service (local, for dev and on-prem)
	ProviderTypeVisor ProviderType = "visor"
	// ProviderTypeRekognition is the AWS Rekognition provider (cloud, for prod)
	ProviderTypeRekognition ProviderType = "rekognition"
	// ProviderTypeMock is the deterministic in-process provider (tests, demos)
	ProviderTypeMock ProviderType = "mock"
)

// NewDetectorSet assembles the detector set based on configuration.
//
// Landmark detection and pose solving always come from the visor service;
// Rekognition has no equivalent APIs for them. Choosing "rekognition" swaps
// only face detection and people counting to AWS.
//
// Environment variables:
//   - VISION_PROVIDER: "visor", "rekognition" or "mock" (default: "visor")
//   - VISOR_URL: visor API URL (default: "http://localhost:8080")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: via AWS SDK credential chain
func NewDetectorSet(ctx context.Context, cfg *config.Config) (vision.DetectorSet, error) {
	providerType := ProviderType(cfg.VisionProvider)

	switch providerType {
	case ProviderTypeRekognition:
		return createRekognitionSet(ctx, cfg)

	case ProviderTypeMock:
		return createMockSet(), nil

	case ProviderTypeVisor, "":
		// Default to visor for dev/test environments
		return createVisorSet(cfg), nil

	default:
		return vision.DetectorSet{}, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.VisionProvider, ProviderTypeVisor, ProviderTypeRekognition, ProviderTypeMock)
	}
}

// createVisorSet builds a detector set backed entirely by the visor service
func createVisorSet(cfg *config.Config) vision.DetectorSet {
	p := newVisorProvider(cfg)
	return vision.DetectorSet{
		Faces:  p,
		Marks:  p,
		Pose:   p,
		People: p,
	}
}

// createRekognitionSet builds a detector set with faces and people counting
// on AWS Rekognition and landmarks plus pose solving on visor
func createRekognitionSet(ctx context.Context, cfg *config.Config) (vision.DetectorSet, error) {
	rekogConfig := rekognition.DefaultConfig()
	rekogConfig.Region = cfg.AWSRegion

	rekog, err := rekognition.NewProvider(ctx, rekogConfig)
	if err != nil {
		return vision.DetectorSet{}, fmt.Errorf("create rekognition provider: %w", err)
	}

	vis := newVisorProvider(cfg)
	return vision.DetectorSet{
		Faces:  rekog,
		Marks:  vis,
		Pose:   vis,
		People: rekog,
	}, nil
}

// createMockSet builds the deterministic in-process detector set
func createMockSet() vision.DetectorSet {
	return mock.New()
}

func newVisorProvider(cfg *config.Config) *visor.Provider {
	visorConfig := visor.DefaultConfig()
	if cfg.VisorURL != "" {
		visorConfig.BaseURL = cfg.VisorURL
	}

	return visor.NewProvider(visorConfig)
}
