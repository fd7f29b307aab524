// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lotmarket/internal/platform/storage"
)

type nopBackend struct{}

func (nopBackend) EnsureBucket(context.Context) error { return nil }
func (nopBackend) Put(context.Context, string, io.Reader, int64, string) error {
	return nil
}
func (nopBackend) Delete(context.Context, string) error { return nil }
func (nopBackend) Bucket() string                       { return "lot-images" }

func TestStorage_URL(t *testing.T) {
	store := storage.NewStorage(nopBackend{}, "http://localhost:9000/")

	assert.Equal(t, "http://localhost:9000/lot-images/lots/1/a.png", store.URL("lots/1/a.png"))
	assert.Equal(t, "http://localhost:9000/lot-images/lots/1/a.png", store.URL("/lots/1/a.png"))
}

func TestNewMinioClient_RequiresSettings(t *testing.T) {
	tests := []struct {
		name    string
		options storage.MinioOptions
	}{
		{"no_endpoint", storage.MinioOptions{AccessKey: "a", SecretKey: "b", Bucket: "c"}},
		{"no_keys", storage.MinioOptions{Endpoint: "localhost:9000", Bucket: "c"}},
		{"no_bucket", storage.MinioOptions{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.NewMinioClient(tt.options)
			assert.Error(t, err)
		})
	}
}
