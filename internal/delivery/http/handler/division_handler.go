package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/pkg/errors"
	"github.com/incident-microservice/internal/pkg/utils"
	"github.com/incident-microservice/internal/pkg/validator"
	"github.com/incident-microservice/internal/usecase"
	"github.com/incident-microservice/internal/usecase/dto"
)

// DivisionHandler - обработчик запросов по поисковым дивизионам
type DivisionHandler struct {
	divisionUC *usecase.DivisionUseCase
	logger     *zap.Logger
}

// NewDivisionHandler - создание нового DivisionHandler
func NewDivisionHandler(divisionUC *usecase.DivisionUseCase, logger *zap.Logger) *DivisionHandler {
	return &DivisionHandler{
		divisionUC: divisionUC,
		logger:     logger,
	}
}

// ListByIncident godoc
// @Summary List divisions
// @Description Возвращает дивизионы инцидента в порядке генерации
// @Tags Divisions
// @Produce json
// @Param id path string true "ID инцидента"
// @Success 200 {object} utils.SuccessResponse{data=dto.DivisionListResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id}/divisions [get]
func (h *DivisionHandler) ListByIncident(c *fiber.Ctx) error {
	incidentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.divisionUC.ListByIncident(c.Context(), incidentID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Create godoc
// @Summary Create division manually
// @Description Создаёт дивизион по вручную нарисованной границе
// @Tags Divisions
// @Accept json
// @Produce json
// @Param id path string true "ID инцидента"
// @Param request body dto.CreateDivisionRequest true "Граница и параметры дивизиона"
// @Success 201 {object} utils.SuccessResponse{data=domain.SearchDivision}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id}/divisions [post]
func (h *DivisionHandler) Create(c *fiber.Ctx) error {
	incidentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.CreateDivisionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	division, err := h.divisionUC.CreateManual(c.Context(), incidentID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: division})
}

// Update godoc
// @Summary Update division
// @Description Меняет статус и/или приоритет дивизиона
// @Tags Divisions
// @Accept json
// @Produce json
// @Param id path string true "ID дивизиона"
// @Param request body dto.UpdateDivisionRequest true "Новые статус/приоритет"
// @Success 200 {object} utils.SuccessResponse{data=domain.SearchDivision}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/divisions/{id} [patch]
func (h *DivisionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateDivisionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	division, err := h.divisionUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, division, nil)
}

// Regenerate godoc
// @Summary Regenerate divisions
// @Description Перегенерирует дивизионы инцидента с новой целевой площадью; запрещено при наличии назначений
// @Tags Divisions
// @Accept json
// @Produce json
// @Param id path string true "ID инцидента"
// @Param request body dto.RegenerateDivisionsRequest true "Новая целевая площадь"
// @Success 200 {object} utils.SuccessResponse{data=dto.RegenerateDivisionsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id}/divisions/regenerate [post]
func (h *DivisionHandler) Regenerate(c *fiber.Ctx) error {
	incidentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.RegenerateDivisionsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.divisionUC.Regenerate(c.Context(), incidentID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Divisions)})
}
