// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes every lotmarket HTTP response.

Success bodies are wrapped as {"data": ...}. Failures are written as
{"error", "code", "details"} by [Error], which is the only place where a Go
error becomes an HTTP status. Services return typed [apperr.AppError] values
(or [dberr.ErrNotFound]) and never pick status codes themselves.
*/
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/ctxutil"
)

const contentTypeJSON = "application/json; charset=utf-8"

// SuccessEnvelope wraps a successful payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

func write(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes 200 with data in the success envelope.
func OK(writer http.ResponseWriter, data any) {
	write(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes 201 with data in the success envelope.
func Created(writer http.ResponseWriter, data any) {
	write(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Status writes data in the success envelope under an explicit status,
// e.g. a degraded readiness report with 503.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	write(writer, statusCode, SuccessEnvelope{Data: data})
}

// NoContent writes 204 with an empty body.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error translates err into a status code and error envelope.
//
// Errors that are not an [apperr.AppError] anywhere in their chain are
// reported as 500 INTERNAL_ERROR with their text withheld from the client.
// Every 5xx is logged with the request-scoped logger.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
	}

	write(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
