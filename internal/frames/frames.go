// Package frames centraliza as operações de imagem do serviço: decodificação
// dos frames enviados em base64, crop da região da face e gravação de
// snapshots em disco.
package frames

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// DecodeBase64 decodes a frame sent as base64. Accepts both raw payloads
// and data URIs ("data:image/jpeg;base64,..."); for URIs the segment after
// the last comma is used.
func DecodeBase64(data string) (image.Image, error) {
	if idx := strings.LastIndex(data, ","); idx >= 0 {
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode base64: %w", err))
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode image: %w", err))
	}

	return img, nil
}

// Crop extracts the given region from the frame.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	return imaging.Crop(img, rect)
}

// EncodeJPEG serializes the frame as JPEG bytes for the wire.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 serializes the frame as base64 JPEG for the wire.
func EncodeBase64(img image.Image) (string, error) {
	raw, err := EncodeJPEG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// SaveJPEG grava o frame como JPEG, criando o diretório se necessário.
func SaveJPEG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}
