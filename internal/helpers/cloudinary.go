package helpers

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	EventsFolder = "events"
	uploadTag    = "eventhive"
)

// UploadedAsset is what the media host hands back for a stored image.
type UploadedAsset struct {
	URL      string
	PublicID string
}

// MediaHost stores images remotely and serves them from a public URL.
type MediaHost interface {
	Upload(ctx context.Context, filePath string) (*UploadedAsset, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryHost(cld *cloudinary.Cloudinary, folder string) *CloudinaryHost {
	if folder == "" {
		folder = EventsFolder
	}
	return &CloudinaryHost{cld: cld, folder: folder}
}

func (h *CloudinaryHost) Upload(ctx context.Context, filePath string) (*UploadedAsset, error) {
	if h.cld == nil {
		return nil, fmt.Errorf("cloudinary client is not initialized")
	}
	res, err := h.cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
		Folder: h.folder,
		Tags:   []string{uploadTag},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image %s: %w", filePath, err)
	}
	// cloudinary reports some rejections in the body with a nil error
	if res.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image %s: %s", filePath, res.Error.Message)
	}
	return &UploadedAsset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	if h.cld == nil {
		return fmt.Errorf("cloudinary client is not initialized")
	}
	res, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("failed to delete image %s: %s", publicID, res.Error.Message)
	}
	return nil
}
