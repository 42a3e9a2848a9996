package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSBlob keeps the document in one object of a Cloud Storage bucket.
type GCSBlob struct {
	client *gcs.Client
	object *gcs.ObjectHandle
}

func NewGCSBlob(ctx context.Context, bucket, object string) (*GCSBlob, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: create gcs client: %w", err)
	}
	return &GCSBlob{
		client: client,
		object: client.Bucket(bucket).Object(object),
	}, nil
}

func (b *GCSBlob) Download(ctx context.Context) ([]byte, error) {
	r, err := b.object.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: open gcs object: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (b *GCSBlob) Upload(ctx context.Context, data []byte) error {
	w := b.object.NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("storage: write gcs object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: close gcs writer: %w", err)
	}
	return nil
}

func (b *GCSBlob) Close() error {
	return b.client.Close()
}
