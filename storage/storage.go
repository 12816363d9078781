package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RigelNana/arktube/config"
)

// Blob 缩略图等静态文件的外部对象存储
type Blob interface {
	// Put 写入对象并返回可公开访问的地址
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New 按配置选择 MinIO 或 S3
func New(ctx context.Context, cfg config.StorageConfig) (Blob, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinioBlob(ctx, cfg)
	case "s3":
		return NewS3Blob(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

var downloadClient = &http.Client{Timeout: 60 * time.Second}

// CopyFromURL 下载远端文件并写入存储
func CopyFromURL(ctx context.Context, blob Blob, srcURL, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("download %s: http status %d", srcURL, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return blob.Put(ctx, key, resp.Body, resp.ContentLength, contentType)
}

func publicURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, key)
}
