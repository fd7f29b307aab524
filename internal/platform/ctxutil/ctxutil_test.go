// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lotmarket/internal/platform/ctxutil"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0190f2c4-req")
	assert.Equal(t, "0190f2c4-req", ctxutil.GetRequestID(ctx))
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))

	// A nil logger stored by mistake still yields a usable one.
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctxutil.WithLogger(ctx, nil)))
}

func TestAuthUser(t *testing.T) {
	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		wantUserID string
	}{
		{"anonymous", nil, ""},
		{"seller", &sec.AuthClaims{UserID: "user-42", Email: "seller@example.com"}, "user-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.claims != nil {
				ctx = ctxutil.WithAuthUser(ctx, tt.claims)
			}

			assert.Equal(t, tt.claims, ctxutil.GetAuthUser(ctx))
			assert.Equal(t, tt.wantUserID, ctxutil.GetUserID(ctx))
		})
	}
}

type foreignKey string

func TestKeysDoNotCollide(t *testing.T) {
	ctx := context.WithValue(context.Background(), foreignKey("request_id"), "foreign")
	assert.Empty(t, ctxutil.GetRequestID(ctx))
}
