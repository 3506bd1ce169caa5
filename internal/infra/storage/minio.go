package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store mirrors generated artifacts (map, report) into a bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, o Options) (*Store, error) {
	cli, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKey, o.SecretKey, ""),
		Secure: o.UseSSL,
		Region: o.Region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, o.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, o.Bucket, minio.MakeBucketOptions{Region: o.Region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: o.Bucket, prefix: o.Prefix}, nil
}

// Upload puts localPath under key and returns the object URL.
func (s *Store) Upload(ctx context.Context, localPath, key string) (string, error) {
	objectKey := ObjectKey(s.prefix, key)
	_, err := s.client.FPutObject(ctx, s.bucketName, objectKey, localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}

	// public URL; private buckets need a presigned URL instead
	url := *s.client.EndpointURL()
	url.Path = path.Join("/", s.bucketName, objectKey)
	return url.String(), nil
}

// ObjectKey joins an optional prefix with key.
func ObjectKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// ContentType guesses the MIME type from the file extension.
func ContentType(localPath string) string {
	switch filepath.Ext(localPath) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
