package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/chartmuseum/storage"
)

// chartmuseumArchive adapts a chartmuseum storage backend (local directory,
// S3, GCS, ...) to the Archive interface.
type chartmuseumArchive struct {
	backend storage.Backend
}

// NewLocalArchive archives exports under a local directory. The default for
// single-node deployments; swap in an S3 backend for shared storage.
func NewLocalArchive(rootDir string) Archive {
	return &chartmuseumArchive{backend: storage.NewLocalFilesystemBackend(rootDir)}
}

// NewS3Archive archives exports in an S3-compatible bucket.
func NewS3Archive(bucket, prefix, region, endpoint string) (Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	region = strings.TrimSpace(region)
	if region == "" {
		region = "us-east-1"
	}

	backend := storage.NewAmazonS3BackendWithOptions(
		bucket,
		prefix,
		region,
		endpoint,
		"",
		&storage.AmazonS3Options{},
	)

	return &chartmuseumArchive{backend: backend}, nil
}

func (a *chartmuseumArchive) Put(ctx context.Context, key string, data []byte) error {
	if err := a.backend.PutObject(key, data); err != nil {
		return fmt.Errorf("archive put failed: %w", err)
	}
	return nil
}

func (a *chartmuseumArchive) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := a.backend.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("archive get failed: %w", err)
	}
	return object.Content, nil
}

func (a *chartmuseumArchive) List(ctx context.Context, prefix string) ([]string, error) {
	objects, err := a.backend.ListObjects(prefix)
	if err != nil {
		return nil, fmt.Errorf("archive list failed: %w", err)
	}

	keys := make([]string, 0, len(objects))
	for _, object := range objects {
		keys = append(keys, object.Path)
	}
	return keys, nil
}
