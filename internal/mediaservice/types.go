package mediaservice

import (
	"context"
	"errors"
)

// MaxImageSize is the hard ceiling for uploaded image payloads, in bytes.
const MaxImageSize = 5_000_000

var (
	ErrInvalidImageType = errors.New("invalid image type")
	ErrImageTooLarge    = errors.New("image size too large")
	ErrUploadFailed     = errors.New("image upload failed")
)

// File is a raw image payload as received at the HTTP boundary.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

type UploadResult struct {
	SecureURL string `json:"secure_url"`
}

// ImageHost is the external hosting service. Any non-success response is a
// hard failure of the calling workflow step.
type ImageHost interface {
	Upload(ctx context.Context, path string, folder string) (*UploadResult, error)
}

type MediaService struct {
	tempDir string
	host    ImageHost
}
