package mediaservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPImageHost uploads staged files to the external hosting service over
// HTTP multipart. There is no retry: a failed attempt fails the workflow.
type HTTPImageHost struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPImageHost(endpoint, apiKey string) *HTTPImageHost {
	return &HTTPImageHost{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *HTTPImageHost) Upload(ctx context.Context, path string, folder string) (*UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	if err := writer.WriteField("folder", folder); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	res, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUploadFailed, res.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if result.SecureURL == "" {
		return nil, fmt.Errorf("%w: empty secure url", ErrUploadFailed)
	}

	return &result, nil
}
