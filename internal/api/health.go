// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
)

// readinessTimeout bounds a single dependency probe.
const readinessTimeout = 2 * time.Second

// HealthCheck is a named dependency probe for the /ready endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthHandler struct {
	checks []HealthCheck
	logger *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
// Checks run in order; a nil Check is skipped.
func NewHealthHandlers(checks []HealthCheck, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{checks: checks, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, len(handler.checks))
	isSystemReady := true

	for _, dependency := range handler.checks {
		if dependency.Check == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		err := dependency.Check(ctx)
		cancel()

		result := checkResult{Name: dependency.Name, IsOK: err == nil}
		if err != nil {
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.Name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	responseStatus, httpStatus := "ready", http.StatusOK
	if !isSystemReady {
		responseStatus, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	respond.Status(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	})
}
