package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/sponsor-digest/pkg/config"
	"github.com/johnquangdev/sponsor-digest/pkg/segment"
)

// maxPresignExpiry is the longest lifetime S3 accepts for a presigned URL
const maxPresignExpiry = 7 * 24 * time.Hour

// MinIOClient archives extracted sponsorship clips
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string // Public URL for generating accessible URLs (e.g., https://minio.example.com)
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ClipObjectName returns the object key of a sponsorship clip
func ClipObjectName(videoID string, iv segment.Interval) string {
	return fmt.Sprintf("clips/%s/%.3f-%.3f.wav", videoID, iv.Start, iv.Stop)
}

// UploadClip stores WAV audio of one sponsorship and returns its object key
func (m *MinIOClient) UploadClip(ctx context.Context, videoID string, iv segment.Interval, wav []byte) (string, error) {
	objectName := ClipObjectName(videoID, iv)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(wav), int64(len(wav)), minio.PutObjectOptions{
		ContentType: "audio/wav",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload clip %s: %w", objectName, err)
	}
	return objectName, nil
}

// GetFileURL gets a presigned URL for accessing a file
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if expiry <= 0 || expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// Behind a reverse proxy the internal endpoint is swapped for the public one
	if m.publicURL != "" {
		return rewriteHost(u, m.publicURL), nil
	}
	return u.String(), nil
}

// Ping checks that the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

func rewriteHost(u *url.URL, publicURL string) string {
	pathAndQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}
	return publicURL + pathAndQuery
}
