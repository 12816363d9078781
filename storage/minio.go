package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/RigelNana/arktube/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioBlob struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioBlob(ctx context.Context, cfg config.StorageConfig) (*MinioBlob, error) {
	// 初始化 MinIO 客户端
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	// 确保存储桶存在
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}
	return &MinioBlob{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (b *MinioBlob) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object to MinIO: %w", err)
	}
	return publicURL(b.baseURL, b.bucket, key), nil
}

func (b *MinioBlob) Delete(ctx context.Context, key string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object from MinIO: %w", err)
	}
	return nil
}
