// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators mounted by internal/api.

Order matters. The server installs them as:

	RequestID → StructuredLogger → Timeout → RateLimit → PanicRecovery → CORS → Authenticate

so that every log line carries the request id and every rejection, including
rate limiting and recovered panics, goes out through respond.Error.
*/
package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/ctxutil"
	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// # Request Tracing

// RequestID reuses the caller's X-Request-ID or mints a UUIDv7, then echoes it
// on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// # Access Log

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger stores a request-scoped logger in the context and writes
// one "http_request_finished" entry per request. 4xx log at warn, 5xx at error.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			requestLogger.Log(ctx, levelFor(recorder.status), "http_request_finished",
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RealIP returns the client address, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the socket peer.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
