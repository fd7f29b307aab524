// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads the inputs of a lotmarket HTTP request: the JSON
// body, chi URL parameters, query flags and the authenticated caller.
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/ctxutil"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
	"github.com/taibuivan/lotmarket/internal/platform/validate"
	"github.com/taibuivan/lotmarket/pkg/convert"
)

// maxJSONBodyBytes caps JSON request bodies. Images use their own limit.
const maxJSONBodyBytes = 1 << 20

var errPayloadTooLarge = apperr.ValidationError("Request body is too large")

// DecodeJSON decodes the body into target. Malformed JSON yields
// [validate.ErrInvalidJSON]; a body over 1 MiB yields a validation error too.
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	err := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxJSONBodyBytes)).Decode(target)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errPayloadTooLarge
	}
	return validate.ErrInvalidJSON.WithCause(err)
}

// ID returns the chi URL parameter name, e.g. the {id} of /api/lots/{id}.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// QueryBool reads a boolean query flag such as ?own=true. Missing or
// unparsable values are false.
func QueryBool(request *http.Request, name string) bool {
	return convert.ToBool(request.URL.Query().Get(name))
}

// RequiredClaims returns the caller's token claims or a 401.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	return claims, nil
}

// RequiredUserID returns the caller's user id or a 401.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
