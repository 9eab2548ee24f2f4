package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"bar-council-campaign/composer"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// maxDriveImageBytes bounds a downloaded candidate photo
const maxDriveImageBytes = 10 << 20

var driveImageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance from client options,
// usually option.WithCredentialsFile or option.WithCredentialsJSON of a service account
func NewDriveService(ctx context.Context, opts ...option.ClientOption) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: driveService}, nil
}

// Ensure DriveService implements the interfaces it is used through
var (
	_ DriveServiceInterface    = (*DriveService)(nil)
	_ composer.DriveDownloader = (*DriveService)(nil)
)

// DownloadImage downloads the content of an image file.
// Files that are not images are rejected before the download.
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, fmt.Errorf("drive file id is required")
	}

	file, err := ds.client.Files.Get(fileID).
		Fields("id, name, mimeType, size").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	if !driveImageMimeTypes[strings.ToLower(file.MimeType)] {
		return nil, fmt.Errorf("file %s is not an image (mimeType=%s)", fileID, file.MimeType)
	}

	resp, err := ds.client.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	if len(data) > maxDriveImageBytes {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fileID, maxDriveImageBytes)
	}

	log.Printf("✓ Downloaded %s from Drive (%d bytes)", file.Name, len(data))
	return data, nil
}
