package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config/minio"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// objectAPI is the subset of the MinIO client used by MinIOBackend.
type objectAPI interface {
	StatObject(ctx context.Context, bucket, object string, opts miniogo.StatObjectOptions) (miniogo.ObjectInfo, error)
	PutObject(
		ctx context.Context,
		bucket, object string,
		reader io.Reader,
		size int64,
		opts miniogo.PutObjectOptions,
	) (miniogo.UploadInfo, error)
}

// MinIOBackend stores blobs as objects in a single bucket. A PutObject is atomic:
// the object becomes visible only once the upload completes.
// Keys under the state root go to the state bucket, everything else to the artifact bucket.
type MinIOBackend struct {
	client        objectAPI
	bucket        string
	stateBucket   string
	statePrefix   string
	uploadTimeout time.Duration
}

// NewMinIOBackend connects to MinIO and, when configured, creates the buckets.
// stateRoot is the key prefix of completion markers.
func NewMinIOBackend(
	ctx context.Context,
	cfg *minio.Config,
	stateRoot string,
	log logger.Logger,
) (*MinIOBackend, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	if cfg.CreateBucket {
		for _, bucket := range uniqueBuckets(cfg.Bucket, cfg.StateBucket) {
			if err = ensureBucket(ctx, client, bucket); err != nil {
				return nil, err
			}
		}
	}

	log.Info("MinIO artifact backend initialized",
		logger.String("endpoint", cfg.Endpoint),
		logger.String("bucket", cfg.Bucket),
		logger.String("state_bucket", cfg.StateBucket),
	)

	return newMinIOBackend(client, cfg, stateRoot), nil
}

func newMinIOBackend(client objectAPI, cfg *minio.Config, stateRoot string) *MinIOBackend {
	stateBucket := cfg.StateBucket
	if stateBucket == "" {
		stateBucket = cfg.Bucket
	}
	return &MinIOBackend{
		client:        client,
		bucket:        cfg.Bucket,
		stateBucket:   stateBucket,
		statePrefix:   strings.Trim(path.Clean(stateRoot), "/") + "/",
		uploadTimeout: cfg.UploadTimeout,
	}
}

func uniqueBuckets(buckets ...string) []string {
	seen := make(map[string]struct{}, len(buckets))
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if _, ok := seen[b]; ok || b == "" {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

func ensureBucket(ctx context.Context, client *miniogo.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err = client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// objectName strips the leading slash an absolute root would leave in a key.
func objectName(key string) string {
	return strings.TrimLeft(key, "/")
}

func (b *MinIOBackend) locate(key string) (bucket, object string) {
	object = objectName(key)
	if strings.HasPrefix(object, b.statePrefix) {
		return b.stateBucket, object
	}
	return b.bucket, object
}

// Exists stats the object at key.
func (b *MinIOBackend) Exists(ctx context.Context, key string) (bool, error) {
	bucket, object := b.locate(key)
	_, err := b.client.StatObject(ctx, bucket, object, miniogo.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	resp := miniogo.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("stat object %s: %w", key, err)
}

// Put uploads data as a single object.
func (b *MinIOBackend) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if b.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.uploadTimeout)
		defer cancel()
	}

	bucket, object := b.locate(key)
	_, err := b.client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s to MinIO: %w", key, err)
	}
	return nil
}
