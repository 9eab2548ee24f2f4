package composer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// DrivePrefix marks a photo reference that is a Google Drive file ID
const DrivePrefix = "drive:"

const maxPhotoBytes = 10 << 20

// PhotoLoader fetches and decodes the candidate photo
type PhotoLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// DriveDownloader downloads the raw bytes of a Drive file
type DriveDownloader interface {
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}

// SourceLoader resolves photo references against the static directory, the public
// base URL, or Google Drive
type SourceLoader struct {
	BaseURL   string
	StaticDir string
	Client    *http.Client
	Drive     DriveDownloader
}

// NewSourceLoader creates a loader with a bounded HTTP client
func NewSourceLoader(baseURL, staticDir string, drive DriveDownloader) *SourceLoader {
	return &SourceLoader{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		StaticDir: staticDir,
		Client:    &http.Client{Timeout: 15 * time.Second},
		Drive:     drive,
	}
}

// Load fetches ref and decodes it. Every failure is wrapped in *ImageLoadError.
func (l *SourceLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &ImageLoadError{Ref: ref, Err: ErrEmptyPhotoRef}
	}

	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, &ImageLoadError{Ref: ref, Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ImageLoadError{Ref: ref, Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	return img, nil
}

func (l *SourceLoader) fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, DrivePrefix):
		if l.Drive == nil {
			return nil, fmt.Errorf("drive is not configured")
		}
		return l.Drive.DownloadImage(ctx, strings.TrimPrefix(ref, DrivePrefix))
	case isAbsoluteURL(ref):
		return l.fetchURL(ctx, ref)
	}

	if local := l.localPath(ref); local != "" {
		if data, err := os.ReadFile(local); err == nil {
			return data, nil
		}
	}
	if l.BaseURL == "" {
		return nil, fmt.Errorf("photo %s not found in static directory and no base URL configured", ref)
	}
	return l.fetchURL(ctx, l.BaseURL+"/"+strings.TrimLeft(ref, "/"))
}

// localPath maps a relative reference into the static directory without escaping it
func (l *SourceLoader) localPath(ref string) string {
	if l.StaticDir == "" {
		return ""
	}
	clean := path.Clean("/" + ref)
	return filepath.Join(l.StaticDir, filepath.FromSlash(clean))
}

func (l *SourceLoader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
