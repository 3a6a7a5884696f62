// Package gcs implements the storage port over Google Cloud Storage through
// the JSON API. Credentials resolve via Application Default Credentials.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gstorage "google.golang.org/api/storage/v1"

	"mediaforge/internal/ports"
)

type Config struct {
	ProjectID string
	Bucket    string
}

type Store struct {
	svc *gstorage.Service
	cfg Config
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	httpClient, err := google.DefaultClient(ctx, gstorage.DevstorageReadWriteScope)
	if err != nil {
		return nil, fmt.Errorf("gcs credentials: %w", err)
	}

	svc, err := gstorage.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("gcs service: %w", err)
	}

	return &Store{svc: svc, cfg: cfg}, nil
}

func (s *Store) Provider() string { return "gcs" }

func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.svc.Buckets.Get(s.cfg.Bucket).Context(ctx).Do()
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != 404 {
		return err
	}

	_, err = s.svc.Buckets.Insert(s.cfg.ProjectID, &gstorage.Bucket{Name: s.cfg.Bucket}).Context(ctx).Do()
	return err
}

func (s *Store) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	obj := &gstorage.Object{Name: in.ObjectKey, ContentType: in.ContentType}

	call := s.svc.Objects.Insert(s.cfg.Bucket, obj).
		Media(in.Reader).
		PredefinedAcl("publicRead").
		Context(ctx)

	res, err := call.Do()
	if err != nil {
		return ports.PutObjectOutput{}, err
	}

	url, _ := s.ObjectURL(ctx, in.ObjectKey)
	return ports.PutObjectOutput{ObjectKey: res.Name, Size: int64(res.Size), URL: url}, nil
}

func (s *Store) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, string, int64, error) {
	res, err := s.svc.Objects.Get(s.cfg.Bucket, objectKey).Context(ctx).Download()
	if err != nil {
		return nil, "", 0, err
	}
	return res.Body, res.Header.Get("Content-Type"), res.ContentLength, nil
}

func (s *Store) DeleteObject(ctx context.Context, objectKey string) error {
	return s.svc.Objects.Delete(s.cfg.Bucket, objectKey).Context(ctx).Do()
}

func (s *Store) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.cfg.Bucket, objectKey), nil
}
