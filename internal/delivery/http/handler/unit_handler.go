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

// UnitHandler - обработчик запросов по поисковым командам
type UnitHandler struct {
	unitUC *usecase.UnitUseCase
	logger *zap.Logger
}

// NewUnitHandler - создание нового UnitHandler
func NewUnitHandler(unitUC *usecase.UnitUseCase, logger *zap.Logger) *UnitHandler {
	return &UnitHandler{
		unitUC: unitUC,
		logger: logger,
	}
}

// CheckIn godoc
// @Summary Check in unit
// @Description Регистрирует команду на инциденте; повторная отметка с тем же позывным обновляет состав
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "ID инцидента"
// @Param request body dto.CheckInUnitRequest true "Параметры команды"
// @Success 201 {object} utils.SuccessResponse{data=domain.Unit}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id}/units [post]
func (h *UnitHandler) CheckIn(c *fiber.Ctx) error {
	incidentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.CheckInUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	unit, err := h.unitUC.CheckIn(c.Context(), incidentID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: unit})
}

// ListByIncident godoc
// @Summary List units
// @Description Возвращает команды инцидента
// @Tags Units
// @Produce json
// @Param id path string true "ID инцидента"
// @Success 200 {object} utils.SuccessResponse{data=dto.UnitListResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id}/units [get]
func (h *UnitHandler) ListByIncident(c *fiber.Ctx) error {
	incidentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.unitUC.ListByIncident(c.Context(), incidentID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// UpdateStatus godoc
// @Summary Update unit status
// @Description Переводит команду в новый статус с проверкой допустимости перехода
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "ID команды"
// @Param request body dto.UpdateUnitStatusRequest true "Новый статус"
// @Success 200 {object} utils.SuccessResponse{data=domain.Unit}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/units/{id}/status [patch]
func (h *UnitHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateUnitStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	unit, err := h.unitUC.UpdateStatus(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, unit, nil)
}

// Assign godoc
// @Summary Assign unit to division
// @Description Назначает команду на дивизион; дивизион переходит в assigned
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "ID команды"
// @Param request body dto.AssignUnitRequest true "ID дивизиона"
// @Success 200 {object} utils.SuccessResponse{data=domain.Unit}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/units/{id}/assign [post]
func (h *UnitHandler) Assign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.AssignUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	unit, err := h.unitUC.Assign(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, unit, nil)
}
