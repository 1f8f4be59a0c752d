package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dealerhub/forecast-engine/internal/config"
)

// MinioArchiver implements SnapshotArchiver against any S3-compatible
// endpoint.
type MinioArchiver struct {
	client *minio.Client
	bucket string
}

type noopArchiver struct{}

// NewSnapshotArchiver builds a minio-backed archiver when archiving is
// enabled, a noop otherwise.
func NewSnapshotArchiver(cfg config.ArchiveConfig) (SnapshotArchiver, error) {
	if !cfg.Enabled {
		return &noopArchiver{}, nil
	}
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("archive endpoint and bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioArchiver{client: client, bucket: cfg.Bucket}, nil
}

// NewNoopArchiver returns an archiver that discards snapshots.
func NewNoopArchiver() SnapshotArchiver {
	return &noopArchiver{}
}

func (a *MinioArchiver) ArchiveSnapshot(ctx context.Context, key string, payload []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to archive snapshot %s: %w", key, err)
	}

	return nil
}

func (n *noopArchiver) ArchiveSnapshot(ctx context.Context, key string, payload []byte) error {
	return nil
}
