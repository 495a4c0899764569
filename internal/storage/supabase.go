package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Storage holds evidence snapshots of blocked images for reviewers.
type Storage interface {
	Upload(ctx context.Context, bucket, path string, data io.Reader, contentType string) error
	GetPublicURL(bucket, path string) string
}

type SupabaseStorage struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseStorage(supabaseURL, serviceKey string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    supabaseURL + "/storage/v1",
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (s *SupabaseStorage) Upload(ctx context.Context, bucket, path string, data io.Reader, contentType string) error {
	url := fmt.Sprintf("%s/object/%s/%s", s.baseURL, bucket, path)

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, data); err != nil {
		return fmt.Errorf("read upload data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, buf)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload evidence: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}

func (s *SupabaseStorage) GetPublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, bucket, path)
}
