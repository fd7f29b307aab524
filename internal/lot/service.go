// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/internal/platform/validate"
	"github.com/taibuivan/lotmarket/pkg/textnorm"
	"github.com/taibuivan/lotmarket/pkg/uuid"
)

// ImageStore persists lot images and builds their public address.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Service implements the lot use cases.
type Service struct {
	repository Repository
	policy     Policy
	images     ImageStore
	logger     *slog.Logger
}

// NewService constructs a new [Service]. images may be nil, which disables uploads.
func NewService(repository Repository, policy Policy, images ImageStore, logger *slog.Logger) *Service {
	if policy == nil {
		policy = OpenPolicy{}
	}
	return &Service{
		repository: repository,
		policy:     policy,
		images:     images,
		logger:     logger,
	}
}

// # Create

// CreateInput holds the fields of a new lot. Nil pointers mark missing values.
type CreateInput struct {
	Title          string
	Image          string
	Status         Status
	CurrentPrice   *float64
	EstimatedPrice *float64
	LotStartTime   *time.Time
	LotEndTime     *time.Time
}

func (input CreateInput) validate() error {
	validator := &validate.Validator{}
	input.check(validator)
	return validator.Err()
}

// check adds the create rules to validator. A field that already carries an
// error (a value that failed to convert) is not reported again as missing.
func (input CreateInput) check(validator *validate.Validator) {
	validator.Required(FieldTitle, input.Title)

	validator.Required(FieldStatus, string(input.Status))
	validator.OneOf(FieldStatus, string(input.Status), statusStrings(Statuses)...)

	requirePrice(validator, FieldCurrentPrice, input.CurrentPrice)
	requirePrice(validator, FieldEstimatedPrice, input.EstimatedPrice)

	requireTime(validator, FieldLotStartTime, input.LotStartTime)
	requireTime(validator, FieldLotEndTime, input.LotEndTime)

	if input.LotStartTime != nil && input.LotEndTime != nil {
		validator.Custom(FieldLotEndTime, input.LotEndTime.Before(*input.LotStartTime), MsgEndBeforeStart)
	}
}

func requirePrice(validator *validate.Validator, field string, value *float64) {
	if value == nil {
		validator.Custom(field, !validator.Has(field), field+" should not be empty")
		return
	}
	validator.Min(field, *value, 0)
}

func requireTime(validator *validate.Validator, field string, value *time.Time) {
	validator.Custom(field, value == nil && !validator.Has(field), MsgMustBeDate(field))
}

/*
Create validates input and stores a new lot owned by actor.

Parameters:
  - context: context.Context
  - actor: string (Authenticated user id, becomes the owner)
  - input: CreateInput

Returns:
  - *Lot: The stored lot including its assigned id
  - error: VALIDATION_ERROR or a store failure
*/
func (service *Service) Create(context context.Context, actor string, input CreateInput) (*Lot, error) {
	input.Title = textnorm.Title(input.Title)

	if err := input.validate(); err != nil {
		return nil, err
	}

	l := &Lot{
		Title:          input.Title,
		Image:          strings.TrimSpace(input.Image),
		Status:         input.Status,
		CurrentPrice:   *input.CurrentPrice,
		EstimatedPrice: *input.EstimatedPrice,
		LotStartTime:   input.LotStartTime.UTC(),
		LotEndTime:     input.LotEndTime.UTC(),
		UserID:         actor,
	}

	if err := service.repository.Create(context, l); err != nil {
		return nil, fmt.Errorf("lot_service_create_failed: %w", err)
	}

	service.logger.Info("lot_created", slog.String("lot_id", l.ID), slog.String("user_id", actor))
	return l, nil
}

// # Read

// FindAll lists every lot, or only the actor's when filter.Own is set.
func (service *Service) FindAll(context context.Context, filter Filter) ([]*Lot, error) {
	if filter.Own && filter.UserID == "" {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	return service.repository.FindAll(context, filter)
}

// FindOne fetches a lot by id, returning [dberr.ErrNotFound] when it does not exist.
func (service *Service) FindOne(context context.Context, id string) (*Lot, error) {
	return service.repository.FindByID(context, id)
}

// # Update

func (patch Patch) validate() error {
	validator := &validate.Validator{}
	patch.check(validator)
	return validator.Err()
}

func (patch Patch) check(validator *validate.Validator) {
	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title)
	}
	if patch.Status != nil {
		validator.OneOf(FieldStatus, string(*patch.Status), statusStrings(Statuses)...)
	}
	if patch.CurrentPrice != nil {
		validator.Min(FieldCurrentPrice, *patch.CurrentPrice, 0)
	}
	if patch.EstimatedPrice != nil {
		validator.Min(FieldEstimatedPrice, *patch.EstimatedPrice, 0)
	}
	if patch.LotStartTime != nil && patch.LotEndTime != nil {
		validator.Custom(FieldLotEndTime, patch.LotEndTime.Before(*patch.LotStartTime), MsgEndBeforeStart)
	}
}

/*
Update merges the supplied fields into the lot and returns the result.

The ownership policy, the transition table for a supplied status and the
time window for a lone lotStartTime or lotEndTime are checked by the store
in the same round trip as the write.

Returns:
  - *Lot: The lot after the update
  - error: VALIDATION_ERROR (including a window the merged lot would
    break), [dberr.ErrNotFound], [ErrNotOwner], an INVALID_STATUS_TRANSITION
    conflict or a store failure
*/
func (service *Service) Update(context context.Context, actor, id string, patch Patch) (*Lot, error) {

	// ── 1. Validation ────────────────────────────────────────────────────

	if patch.Title != nil {
		title := textnorm.Title(*patch.Title)
		patch.Title = &title
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	// ── 2. Conditional Write ─────────────────────────────────────────────

	cond := Condition{OwnerID: service.policy.MutationOwner(actor)}
	if patch.Status != nil {
		cond.StatusIn = AllowedFrom(*patch.Status)
	}

	// With both bounds in the patch, validate already compared them.
	switch {
	case patch.LotEndTime != nil && patch.LotStartTime == nil:
		cond.StartNotAfter = patch.LotEndTime
	case patch.LotStartTime != nil && patch.LotEndTime == nil:
		cond.EndNotBefore = patch.LotStartTime
	}

	updated, err := service.repository.Update(context, id, patch, cond)
	if err == nil {
		service.logger.Info("lot_updated", slog.String("lot_id", id), slog.String("user_id", actor))
		return updated, nil
	}
	if !dberr.IsNotFound(err) || cond.IsZero() {
		return nil, err
	}

	// ── 3. Diagnosis ─────────────────────────────────────────────────────

	return nil, service.explainMiss(context, id, cond, patch.Status)
}

// # Remove

// Remove deletes exactly one lot. A missing id yields [dberr.ErrNotFound].
func (service *Service) Remove(context context.Context, actor, id string) error {
	cond := Condition{OwnerID: service.policy.MutationOwner(actor)}

	err := service.repository.Delete(context, id, cond)
	if err == nil {
		service.logger.Info("lot_removed", slog.String("lot_id", id), slog.String("user_id", actor))
		return nil
	}
	if !dberr.IsNotFound(err) || cond.IsZero() {
		return err
	}

	return service.explainMiss(context, id, cond, nil)
}

// explainMiss tells apart why a conditional write matched nothing.
func (service *Service) explainMiss(context context.Context, id string, cond Condition, target *Status) error {
	current, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if cond.OwnerID != "" && current.UserID != cond.OwnerID {
		return ErrNotOwner
	}
	if target != nil && !current.Status.CanTransitionTo(*target) {
		return InvalidTransition(current.Status, *target)
	}
	if !cond.WindowHolds(current) {
		field := FieldLotEndTime
		if cond.EndNotBefore != nil {
			field = FieldLotStartTime
		}
		return validate.FieldError(field, MsgEndBeforeStart)
	}

	// The lot changed between the write and this read.
	return ErrConcurrentChange
}

// # Images

// ImageUpload is a raw image body with its declared metadata.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

/*
AttachImage uploads an image to object storage and points the lot at it.

Returns:
  - *Lot: The lot with its new image URL
  - error: SERVICE_UNAVAILABLE when storage is disabled, VALIDATION_ERROR for
    a non-image body, [dberr.ErrNotFound] or [ErrNotOwner]
*/
func (service *Service) AttachImage(context context.Context, actor, id string, upload ImageUpload) (*Lot, error) {
	if service.images == nil {
		return nil, ErrImagesDisabled
	}

	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, validate.FieldError(FieldImage, MsgImageType)
	}

	// Check the lot before uploading so a rejected request leaves no object behind.
	current, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	owner := service.policy.MutationOwner(actor)
	if owner != "" && current.UserID != owner {
		return nil, ErrNotOwner
	}

	key := imageKey(current.ID, mediaType)
	if err := service.images.Put(context, key, upload.Body, upload.Size, mediaType); err != nil {
		return nil, fmt.Errorf("lot_service_upload_image_failed: %w", err)
	}

	url := service.images.URL(key)
	updated, err := service.repository.Update(context, id, Patch{Image: &url}, Condition{OwnerID: owner})
	if err != nil {
		if deleteErr := service.images.Delete(context, key); deleteErr != nil {
			service.logger.Warn("lot_image_cleanup_failed", slog.String("key", key), slog.Any("error", deleteErr))
		}
		return nil, err
	}

	service.logger.Info("lot_image_attached", slog.String("lot_id", id), slog.String("key", key))
	return updated, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// imageKey builds "lots/<id>/<uuid><ext>".
func imageKey(lotID, mediaType string) string {
	ext, ok := imageExtensions[mediaType]
	if !ok {
		if extensions, err := mime.ExtensionsByType(mediaType); err == nil && len(extensions) > 0 {
			ext = extensions[0]
		}
	}
	return fmt.Sprintf("lots/%s/%s%s", lotID, uuid.New(), ext)
}
