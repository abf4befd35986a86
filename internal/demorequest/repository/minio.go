package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/desuite/desuite-web/backend/internal/config"
	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIORepo stores one JSON object per demo request under prefix.
// Keys embed the UUIDv7 id, so sorted keys are in creation order.
type MinIORepo struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIORepo creates a MinIO client and ensures the bucket exists.
func NewMinIORepo(ctx context.Context, cfg config.MinIOConfig) (*MinIORepo, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	r := &MinIORepo{client: mc, bucket: cfg.Bucket, prefix: cfg.Prefix}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, r.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return r, nil
}

func objectKey(prefix, id string) string {
	return prefix + id + ".json"
}

func (r *MinIORepo) Create(ctx context.Context, d *demorequest.DemoRequest) error {
	id, err := newID()
	if err != nil {
		return storageErr("minio", "create", err)
	}
	rec := d.Clone()
	rec.ID = id
	rec.CreatedAt = time.Now().UTC()
	b, err := json.Marshal(rec)
	if err != nil {
		return storageErr("minio", "create", err)
	}
	_, err = r.client.PutObject(ctx, r.bucket, objectKey(r.prefix, id), bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return storageErr("minio", "create", err)
	}
	d.ID, d.CreatedAt = rec.ID, rec.CreatedAt
	return nil
}

func (r *MinIORepo) List(ctx context.Context) ([]*demorequest.DemoRequest, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var keys []string
	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: r.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, storageErr("minio", "list", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)

	out := make([]*demorequest.DemoRequest, 0, len(keys))
	for _, key := range keys {
		d, err := r.get(ctx, key)
		if err != nil {
			return nil, storageErr("minio", "list", err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *MinIORepo) get(ctx context.Context, key string) (*demorequest.DemoRequest, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	var d demorequest.DemoRequest
	if err := json.NewDecoder(obj).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &d, nil
}

func (r *MinIORepo) Ping(ctx context.Context) error {
	_, err := r.client.BucketExists(ctx, r.bucket)
	return err
}
