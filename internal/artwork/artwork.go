// Package artwork post-processes cover art bytes for display.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const jpegQuality = 90

// Info describes a decoded cover
type Info struct {
	Format string
	Width  int
	Height int
}

// Processor resizes and stores cover art images
type Processor struct {
	logger *zap.Logger
}

// NewProcessor creates a new cover art processor
func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// Inspect reads the format and dimensions without decoding the pixels
func (p *Processor) Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Resize scales the cover so that it fits a size×size square, keeping the
// aspect ratio. The result is encoded as JPEG.
func (p *Processor) Resize(ctx context.Context, data []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid cover size: %d", size)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Validate image dimensions to prevent division by zero
	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	p.logger.Debug("Resizing cover",
		zap.Int("from_w", bounds.Dx()),
		zap.Int("from_h", bounds.Dy()),
		zap.Int("size", size))
	cover := imaging.Fit(img, size, size, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, cover, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	p.logger.Debug("Cover processed successfully", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Save writes the cover to path. With size > 0 the image is resized and
// re-encoded in the format implied by the file extension; otherwise the raw
// bytes are written unchanged. Returns the absolute path.
func (p *Processor) Save(ctx context.Context, data []byte, path string, size int) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if size > 0 {
		format, err := imaging.FormatFromFilename(path)
		if err != nil {
			return "", fmt.Errorf("unsupported output format: %w", err)
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to decode image: %w", err)
		}

		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, imaging.Fit(img, size, size, imaging.Lanczos), format, imaging.JPEGQuality(jpegQuality)); err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}

	p.logger.Info("Cover saved",
		zap.String("path", path),
		zap.Int("size", len(data)))

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return absPath, nil
}
