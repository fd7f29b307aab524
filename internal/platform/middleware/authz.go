// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/ctxutil"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
)

const bearerScheme = "bearer"

var (
	errUnauthorized    = apperr.Unauthorized("Unauthorized")
	errMalformedHeader = apperr.Unauthorized("Invalid authorization format")
)

// TokenVerifier checks a raw bearer token. [*sec.TokenService] implements it.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate reads "Authorization: Bearer <jwt>" and, when valid, stores the
// claims in the request context.
//
// Requests without the header pass through anonymously; [RequireAuth] decides
// whether a route needs a caller. A header that is present but malformed,
// expired or badly signed is answered with 401 immediately.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" {
				respond.Error(writer, request, errMalformedHeader)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, errUnauthorized)
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAuth answers 401 unless [Authenticate] stored claims for this request.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, errUnauthorized)
			return
		}
		next.ServeHTTP(writer, request)
	})
}
