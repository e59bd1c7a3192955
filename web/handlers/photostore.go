package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"snapclock.com/snapclock/infrastructure/filesystem"
)

// S3PhotoStore keeps captures in an S3 bucket.
type S3PhotoStore struct {
	Bucket string
	Region string
}

func (s *S3PhotoStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := filesystem.WriteFile(s.Bucket, key, ctx, r, contentType); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key), nil
}

func (s *S3PhotoStore) Open(ctx context.Context, key string, w io.Writer) error {
	return filesystem.ReadFile(s.Bucket, key, ctx, w)
}

// DiskPhotoStore keeps captures under a local directory and serves them
// through the image fetch route. Used for development.
type DiskPhotoStore struct {
	Dir     string
	BaseURL string // e.g. http://localhost:3000
}

func (s *DiskPhotoStore) path(key string) (string, error) {
	// Keys are server-generated, but keep traversal out anyway.
	cleaned := filepath.Clean("/" + key)
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Dir, cleaned), nil
}

func (s *DiskPhotoStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return fmt.Sprintf("%s/image/%s", strings.TrimSuffix(s.BaseURL, "/"), key), nil
}

func (s *DiskPhotoStore) Open(ctx context.Context, key string, w io.Writer) error {
	src, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
