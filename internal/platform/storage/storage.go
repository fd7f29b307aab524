// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storage wraps S3-compatible object storage used for lot images.
package storage

import (
	"context"
	"io"
	"strings"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Storage wraps an ObjectStorage backend with a stable API and builds public URLs.
type Storage struct {
	backend   ObjectStorage
	publicURL string
}

// NewStorage constructs a Storage wrapper for the provided backend.
// publicURL is the externally reachable base, e.g. "https://cdn.example.com".
func NewStorage(backend ObjectStorage, publicURL string) *Storage {
	return &Storage{backend: backend, publicURL: strings.TrimRight(publicURL, "/")}
}

// EnsureBucket ensures the configured bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Put uploads an object to the configured bucket.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

// Delete removes an object from the configured bucket.
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// URL returns the public address of key: "<publicURL>/<bucket>/<key>".
func (s *Storage) URL(key string) string {
	return s.publicURL + "/" + s.backend.Bucket() + "/" + strings.TrimLeft(key, "/")
}
