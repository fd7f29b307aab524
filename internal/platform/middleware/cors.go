// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
)

// AppConfig is the slice of configuration CORS needs.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// CORS allows the configured origins (CORS_ORIGINS). In development every
// origin is accepted so a local frontend on any port can call the API.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constants.HeaderXRequestID},
		ExposedHeaders:   []string{constants.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if cfg.IsDevelopment() {
		options.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}

	return cors.Handler(options)
}
