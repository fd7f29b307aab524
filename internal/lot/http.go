// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/middleware"
	requestutil "github.com/taibuivan/lotmarket/internal/platform/request"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
	"github.com/taibuivan/lotmarket/internal/platform/validate"
)

// Handler implements the lot HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the lot endpoints. Every route requires authentication.
//
// # Endpoints
//   - GET    /            : List lots (?own=true for the caller's).
//   - POST   /            : Create a lot.
//   - GET    /{id}        : Fetch a lot.
//   - PATCH  /{id}        : Partially update a lot.
//   - DELETE /{id}        : Delete a lot.
//   - PUT    /{id}/image  : Upload the lot image.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.findAll)
	router.Post("/", handler.create)

	router.Route("/{"+FieldID+"}", func(r chi.Router) {
		r.Get("/", handler.findOne)
		r.Patch("/", handler.update)
		r.Delete("/", handler.remove)
		r.Put("/image", handler.uploadImage)
	})

	return router
}

// findAll handles GET /api/lots.
func (handler *Handler) findAll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lots, err := handler.service.FindAll(request.Context(), Filter{
		Own:    requestutil.QueryBool(request, FieldOwn),
		UserID: userID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lots)
}

// create handles POST /api/lots.
//
// # Returns
//   - 201 with the stored lot.
//   - 400 VALIDATION_ERROR, e.g. "title should not be empty".
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body createLotRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Scalar Conversion ──────────────────────────────────────────────

	// Unconvertible scalars are reported together with every other failed rule.
	validator := &validate.Validator{}
	input := body.toInput(validator)
	if validator.HasErrors() {
		input.check(validator)
		respond.Error(writer, request, validator.Err())
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	created, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// findOne handles GET /api/lots/{id}.
func (handler *Handler) findOne(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.FindOne(request.Context(), requestutil.ID(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// update handles PATCH /api/lots/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateLotRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	patch := body.toPatch(validator)
	if validator.HasErrors() {
		patch.check(validator)
		respond.Error(writer, request, validator.Err())
		return
	}

	updated, err := handler.service.Update(request.Context(), userID, requestutil.ID(request, FieldID), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// remove handles DELETE /api/lots/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, requestutil.ID(request, FieldID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// uploadImage handles PUT /api/lots/{id}/image with a raw image body.
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, constants.MaxLotImageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, validate.FieldError(FieldImage,
				fmt.Sprintf("image must be smaller than or equal to %d bytes", constants.MaxLotImageBytes)))
			return
		}
		respond.Error(writer, request, err)
		return
	}
	if len(data) == 0 {
		respond.Error(writer, request, validate.FieldError(FieldImage, "image should not be empty"))
		return
	}

	updated, err := handler.service.AttachImage(request.Context(), userID, requestutil.ID(request, FieldID), ImageUpload{
		ContentType: request.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
