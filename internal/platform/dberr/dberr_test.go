// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"pgx_no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"mongo_no_documents", mongo.ErrNoDocuments, http.StatusNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"pg_unique_violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"mongo_duplicate_key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, http.StatusConflict},
		{"unknown", errors.New("socket closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

func TestWrap_NilAndPassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	forbidden := apperr.Forbidden("no")
	assert.Same(t, forbidden, dberr.Wrap(forbidden, "noop"))
}

func TestErrNotFound_Message(t *testing.T) {
	assert.Equal(t, "Not Found", dberr.ErrNotFound.Message)
	assert.True(t, dberr.IsNotFound(fmt.Errorf("lot: %w", dberr.ErrNotFound)))
	assert.True(t, dberr.IsDuplicate(dberr.Wrap(&pgconn.PgError{Code: "23505"}, "insert")))
	assert.False(t, dberr.IsDuplicate(apperr.Conflict("other")))
}
