package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const _maxImageSize = 10 * 1024 * 1024 // 10 MB

// ArtFetcher retrieves cover art addressed by an MPRIS artUrl.
// Supported schemes are http, https and file.
type ArtFetcher struct {
	logger *zap.Logger
	client *http.Client
}

// NewArtFetcher creates a new fetcher instance
func NewArtFetcher(logger *zap.Logger) *ArtFetcher {
	return &ArtFetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch returns the image data at the given URL
func (f *ArtFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid artwork url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "file":
		return f.readFile(u.Path)
	case "":
		return f.readFile(rawURL)
	default:
		return nil, fmt.Errorf("unsupported artwork scheme: %q", u.Scheme)
	}
}

func (f *ArtFetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "mediabridge/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("url is not an image: %s", ct)
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	f.logger.Debug("Image fetched successfully", zap.Int("bytes", len(data)), zap.String("url", rawURL))
	return data, nil
}

func (f *ArtFetcher) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artwork: %w", err)
	}
	defer file.Close()

	data, err := readLimited(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read artwork: %w", err)
	}

	f.logger.Debug("Image read successfully", zap.Int("bytes", len(data)), zap.String("path", path))
	return data, nil
}

// readLimited reads r whole, failing instead of truncating past _maxImageSize
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, _maxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > _maxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes", _maxImageSize)
	}
	return data, nil
}
