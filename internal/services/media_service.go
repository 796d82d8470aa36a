package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joshua-takyi/eventhive/internal/helpers"
)

var (
	ErrNoFile       = errors.New("no file uploaded")
	ErrTempWrite    = errors.New("failed to store upload locally")
	ErrRemoteUpload = errors.New("image upload failed")
)

type UploadResult struct {
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

// MediaService stages an upload on local disk and forwards it to the media
// host. The staged copy is removed whatever the outcome.
type MediaService struct {
	host      helpers.MediaHost
	uploadDir string
	now       func() time.Time
}

func NewMediaService(host helpers.MediaHost, uploadDir string) *MediaService {
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	return &MediaService{host: host, uploadDir: uploadDir, now: time.Now}
}

func (ms *MediaService) UploadDir() string {
	return ms.uploadDir
}

func (ms *MediaService) Upload(ctx context.Context, originalName string, r io.Reader, size int64) (*UploadResult, error) {
	if r == nil || originalName == "" {
		return nil, ErrNoFile
	}

	if err := os.MkdirAll(ms.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempWrite, err)
	}

	// base name only, so a crafted filename cannot escape the upload dir
	name := strconv.FormatInt(ms.now().UnixMilli(), 10) + "-" + filepath.Base(originalName)
	tmpPath := filepath.Join(ms.uploadDir, name)

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempWrite, err)
	}
	defer os.Remove(tmpPath)

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempWrite, err)
	}
	if size <= 0 {
		size = written
	}

	asset, err := ms.host.Upload(ctx, tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUpload, err)
	}

	return &UploadResult{
		URL:          asset.URL,
		PublicID:     asset.PublicID,
		OriginalName: originalName,
		Size:         size,
	}, nil
}

func (ms *MediaService) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return fmt.Errorf("public id is required")
	}
	return ms.host.Destroy(ctx, publicID)
}
