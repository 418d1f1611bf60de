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

// IncidentHandler - обработчик запросов по инцидентам
type IncidentHandler struct {
	incidentUC *usecase.IncidentUseCase
	logger     *zap.Logger
}

// NewIncidentHandler - создание нового IncidentHandler
func NewIncidentHandler(incidentUC *usecase.IncidentUseCase, logger *zap.Logger) *IncidentHandler {
	return &IncidentHandler{
		incidentUC: incidentUC,
		logger:     logger,
	}
}

// Create godoc
// @Summary Create incident
// @Description Создаёт инцидент; при наличии зоны поиска автоматически генерирует поисковые дивизионы
// @Tags Incidents
// @Accept json
// @Produce json
// @Param request body dto.CreateIncidentRequest true "Параметры инцидента"
// @Success 201 {object} utils.SuccessResponse{data=dto.IncidentResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/incidents [post]
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.incidentUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{
		Data: result,
		Meta: &utils.Meta{Total: len(result.Divisions)},
	})
}

// GetByID godoc
// @Summary Get incident
// @Description Возвращает инцидент вместе с дивизионами
// @Tags Incidents
// @Produce json
// @Param id path string true "ID инцидента"
// @Success 200 {object} utils.SuccessResponse{data=dto.IncidentResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id} [get]
func (h *IncidentHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.incidentUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// List godoc
// @Summary List incidents
// @Description Возвращает инциденты с опциональным фильтром по статусу
// @Tags Incidents
// @Produce json
// @Param status query string false "Фильтр по статусу (active, contained, closed)"
// @Param limit query int false "Максимум записей (по умолчанию 50)"
// @Success 200 {object} utils.SuccessResponse{data=dto.IncidentListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 0)

	result, err := h.incidentUC.List(c.Context(), status, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// UpdateStatus godoc
// @Summary Update incident status
// @Description Переводит инцидент в новый статус
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path string true "ID инцидента"
// @Param request body dto.UpdateIncidentStatusRequest true "Новый статус"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/incidents/{id}/status [patch]
func (h *IncidentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateIncidentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.incidentUC.UpdateStatus(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"status": req.Status}, nil)
}
