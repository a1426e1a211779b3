package handlers

import (
	"Employee-Portal-Backend/domain"
	"Employee-Portal-Backend/internal/api/presenters"
	"Employee-Portal-Backend/pkg/photo"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PhotoHandler interface {
		UploadPhotoBatch(c *fiber.Ctx) error
		UploadPhoto(c *fiber.Ctx) error
		GetUploadedPhotos(c *fiber.Ctx) error
	}

	photoHandler struct {
		photoService photo.PhotoService
		validator    *validator.Validate
	}
)

func NewPhotoHandler(photoService photo.PhotoService, validator *validator.Validate) PhotoHandler {
	return &photoHandler{
		photoService: photoService,
		validator:    validator,
	}
}

func (h *photoHandler) UploadPhotoBatch(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhotoBatch, domain.ErrNoFileProvided)
	}

	req := domain.UploadPhotoArchiveRequest{
		File:        file,
		ZipPassword: c.FormValue("zip-passw"),
	}

	res, err := h.photoService.IngestPhotoArchive(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForIngestError(err), domain.MessageFailedUploadPhotoBatch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadPhotoBatch)
}

// statusForIngestError maps input-shaped failures to 400; anything else is
// a storage-side failure.
func statusForIngestError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoFileProvided),
		errors.Is(err, domain.ErrMissingZipPassword),
		errors.Is(err, domain.ErrInvalidArchive),
		errors.Is(err, domain.ErrNoManifestFound),
		errors.Is(err, domain.ErrMalformedXML):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *photoHandler) UploadPhoto(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, domain.ErrNoFileProvided)
	}

	imageSize, err := strconv.ParseInt(c.FormValue("image_size"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, domain.ErrInvalidImageSize)
	}

	req := domain.UploadPhotoRequest{
		File:      file,
		ImageType: c.FormValue("image_type"),
		ImageSize: imageSize,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPhoto, err)
	}

	res, err := h.photoService.UploadPhoto(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadPhoto, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadPhoto)
}

func (h *photoHandler) GetUploadedPhotos(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	res, err := h.photoService.GetUploadedPhotos(c.Context(), userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPhotos, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPhotos)
}
