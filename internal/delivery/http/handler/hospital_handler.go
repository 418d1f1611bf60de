package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/pkg/errors"
	"github.com/incident-microservice/internal/pkg/utils"
	"github.com/incident-microservice/internal/pkg/validator"
	"github.com/incident-microservice/internal/usecase"
	"github.com/incident-microservice/internal/usecase/dto"
)

// HospitalHandler - обработчик запросов по больницам
type HospitalHandler struct {
	hospitalUC *usecase.HospitalUseCase
	logger     *zap.Logger
}

// NewHospitalHandler - создание нового HospitalHandler
func NewHospitalHandler(hospitalUC *usecase.HospitalUseCase, logger *zap.Logger) *HospitalHandler {
	return &HospitalHandler{
		hospitalUC: hospitalUC,
		logger:     logger,
	}
}

// Nearest godoc
// @Summary Nearest hospitals
// @Description Возвращает ближайшие к точке больницы с дистанцией в километрах
// @Tags Hospitals
// @Accept json
// @Produce json
// @Param request body dto.NearestHospitalsRequest true "Точка и лимит"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestHospitalsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/hospitals/nearest [post]
func (h *HospitalHandler) Nearest(c *fiber.Ctx) error {
	var req dto.NearestHospitalsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.hospitalUC.Nearest(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}
