// Package media stores user-uploaded assets (profile photos, company logos)
// in an S3-compatible bucket.
package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	useSSL          bool
}

func newConfig(opts ...MinioOpts) *minioConfig {
	cfg := &minioConfig{
		useSSL: false,
	}

	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

type Uploader struct {
	cfg    *minioConfig
	client *minio.Client
}

func NewMinioUploader(opts ...MinioOpts) (*Uploader, error) {
	cfg := newConfig(opts...)

	minioClient, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &Uploader{cfg: cfg, client: minioClient}, nil
}

// Upload writes the asset under a fresh key and returns its public URL.
// The prefix groups assets by kind, e.g. "profile-photos" or "company-logos".
func (u *Uploader) Upload(ctx context.Context, prefix string, data []byte, contentType string) (string, error) {
	key := path.Join(prefix, uuid.NewString()+extensionFor(contentType))

	_, err := u.client.PutObject(ctx, u.cfg.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.cfg.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.endpoint, u.cfg.bucket, key), nil
}

// Delete removes a previously uploaded asset given the public URL Upload
// returned. URLs pointing outside this bucket are ignored.
func (u *Uploader) Delete(ctx context.Context, assetURL string) error {
	marker := fmt.Sprintf("%s/%s/", u.cfg.endpoint, u.cfg.bucket)
	idx := strings.Index(assetURL, marker)
	if idx < 0 {
		return nil
	}
	key := assetURL[idx+len(marker):]
	if key == "" {
		return nil
	}
	return u.client.RemoveObject(ctx, u.cfg.bucket, key, minio.RemoveObjectOptions{})
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithAccessKey(accessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) MinioOpts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}
