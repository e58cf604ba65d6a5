package mediaservice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewMediaService(tempDir string, host ImageHost) *MediaService {
	return &MediaService{tempDir: tempDir, host: host}
}

// Validate gates a payload before any staging happens: the declared content
// type must be an image kind and the size must not exceed MaxImageSize.
func (s *MediaService) Validate(f *File) error {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return ErrInvalidImageType
	}
	if f.Size > MaxImageSize {
		return ErrImageTooLarge
	}

	return nil
}

// Upload stages the payload to transient local storage, forwards it to the
// image host, and returns the durable URL. The staged file is removed on both
// the success and the failure path. prefix is incorporated into the staged
// name alongside a timestamp and a random id so concurrent callers never
// collide.
func (s *MediaService) Upload(ctx context.Context, f *File, folder, prefix string) (string, error) {
	if err := s.Validate(f); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixNano(), uuid.NewString(), extension(f.ContentType))
	path := filepath.Join(s.tempDir, name)

	if err := os.WriteFile(path, f.Data, 0o600); err != nil {
		return "", fmt.Errorf("could not stage image: %w", err)
	}
	defer os.Remove(path)

	res, err := s.host.Upload(ctx, path, folder)
	if err != nil {
		return "", err
	}

	return res.SecureURL, nil
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
