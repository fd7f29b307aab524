// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions holds connection settings for a MinIO/S3 endpoint.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioClient wraps the MinIO SDK client and bucket name.
type MinioClient struct {
	client *minio.Client
	bucket string
}

// NewMinioClient constructs a MinIO client.
func NewMinioClient(options MinioOptions) (*MinioClient, error) {
	if strings.TrimSpace(options.Endpoint) == "" {
		return nil, errors.New("storage: minio endpoint is required")
	}
	if strings.TrimSpace(options.AccessKey) == "" || strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("storage: minio access key and secret key are required")
	}
	if strings.TrimSpace(options.Bucket) == "" {
		return nil, errors.New("storage: minio bucket is required")
	}

	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: minio client: %w", err)
	}

	return &MinioClient{client: client, bucket: options.Bucket}, nil
}

// EnsureBucket ensures the configured bucket exists.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket lookup: %w", err)
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

// Put uploads an object to the configured bucket.
func (m *MinioClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Delete removes an object from the configured bucket.
func (m *MinioClient) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

// Bucket returns the configured bucket name.
func (m *MinioClient) Bucket() string {
	return m.bucket
}
