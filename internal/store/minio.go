package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/litemark/litemark/internal/config"
	"github.com/litemark/litemark/internal/utils"
)

// minioBackend serves the "oss" and "cos" driver kinds through the
// providers' S3-compatible endpoints.
type minioBackend struct {
	client *minio.Client
	bucket string
	kind   string
}

func newMinioBackend(kind string, cfg config.ObjectStoreConfig) (*minioBackend, error) {
	endpoint, secure := splitEndpoint(cfg.Endpoint)

	lookup := minio.BucketLookupDNS
	if cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s client: %w", kind, err)
	}

	return &minioBackend{client: client, bucket: cfg.Bucket, kind: kind}, nil
}

// splitEndpoint strips the scheme from a configured endpoint URL. TLS is
// assumed unless the endpoint is explicitly http://.
func splitEndpoint(endpoint string) (host string, secure bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	default:
		return endpoint, true
	}
}

func (b *minioBackend) Kind() string { return b.kind }

func (b *minioBackend) Get(ctx context.Context, path string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get %s: %w", b.kind, path, err)
	}
	defer utils.Close(obj)

	// GetObject is lazy; missing objects only surface on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: failed to read %s: %w", b.kind, path, err)
	}
	return data, nil
}

func (b *minioBackend) Put(ctx context.Context, path string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("%s: failed to put %s: %w", b.kind, path, err)
	}
	return nil
}
