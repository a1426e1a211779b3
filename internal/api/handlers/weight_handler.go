package handlers

import (
	"Employee-Portal-Backend/domain"
	"Employee-Portal-Backend/internal/api/presenters"
	"Employee-Portal-Backend/pkg/weight"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	WeightHandler interface {
		UploadWeightCSV(c *fiber.Ctx) error
		GetWeightData(c *fiber.Ctx) error
		GetLatestDatetime(c *fiber.Ctx) error
		GetSummary(c *fiber.Ctx) error
	}

	weightHandler struct {
		weightService weight.WeightService
	}
)

func NewWeightHandler(weightService weight.WeightService) WeightHandler {
	return &weightHandler{weightService: weightService}
}

func (h *weightHandler) UploadWeightCSV(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportCSV, domain.ErrNoFileProvided)
	}

	src, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportCSV, err)
	}
	defer src.Close()

	res, err := h.weightService.ImportCSV(c.Context(), src)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrTruncatedFile) {
			status = fiber.StatusBadRequest
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedImportCSV, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImportCSV)
}

func (h *weightHandler) GetWeightData(c *fiber.Ctx) error {
	res, err := h.weightService.GetMeasurements(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetWeightData, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeightData)
}

func (h *weightHandler) GetLatestDatetime(c *fiber.Ctx) error {
	res, err := h.weightService.GetLatestDatetime(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLatestDatetime, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLatestDatetime)
}

func (h *weightHandler) GetSummary(c *fiber.Ctx) error {
	res, err := h.weightService.GetSummary(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoMeasurements) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetSummary, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSummary, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSummary)
}
