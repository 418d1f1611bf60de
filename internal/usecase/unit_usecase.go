package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/pkg/errors"
	"github.com/incident-microservice/internal/usecase/dto"
)

// UnitUseCase - use case для отметки и ведения поисковых команд
type UnitUseCase struct {
	unitRepo     repository.UnitRepository
	divisionRepo repository.DivisionRepository
	incidentRepo repository.IncidentRepository
	logger       *zap.Logger
}

// NewUnitUseCase - создание нового UnitUseCase
func NewUnitUseCase(
	unitRepo repository.UnitRepository,
	divisionRepo repository.DivisionRepository,
	incidentRepo repository.IncidentRepository,
	logger *zap.Logger,
) *UnitUseCase {
	return &UnitUseCase{
		unitRepo:     unitRepo,
		divisionRepo: divisionRepo,
		incidentRepo: incidentRepo,
		logger:       logger,
	}
}

// CheckIn регистрирует команду на инциденте. Повторная отметка с тем же
// позывным обновляет состав и время последней отметки.
func (uc *UnitUseCase) CheckIn(ctx context.Context, incidentID uuid.UUID, req dto.CheckInUnitRequest) (*domain.Unit, error) {
	incident, err := uc.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if incident.Status == domain.IncidentStatusClosed {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "incident is closed",
		})
	}

	now := time.Now().UTC()
	existing, err := uc.unitRepo.GetByCallSign(ctx, incidentID, req.CallSign)
	if err != nil && err != errors.ErrUnitNotFound {
		return nil, err
	}

	unit := &domain.Unit{
		IncidentID:    incidentID,
		CallSign:      req.CallSign,
		Type:          req.Type,
		TeamSize:      req.TeamSize,
		Status:        domain.UnitStatusCheckedIn,
		Capabilities:  req.Capabilities,
		LastCheckInAt: now,
		UpdatedAt:     now,
	}

	if existing != nil {
		// Повторная отметка: сохраняем ID, статус и назначение
		unit.ID = existing.ID
		unit.Status = existing.Status
		unit.AssignedDivisionID = existing.AssignedDivisionID
		unit.CreatedAt = existing.CreatedAt
	} else {
		unit.ID = uuid.New()
		unit.CreatedAt = now
	}

	if err := uc.unitRepo.Upsert(ctx, unit); err != nil {
		uc.logger.Error("Failed to check in unit",
			zap.String("incident_id", incidentID.String()),
			zap.String("call_sign", req.CallSign),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Unit checked in",
		zap.String("incident_id", incidentID.String()),
		zap.String("call_sign", req.CallSign),
		zap.String("unit_id", unit.ID.String()))

	return unit, nil
}

// UpdateStatus переводит команду в новый статус с проверкой допустимости перехода
func (uc *UnitUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateUnitStatusRequest) (*domain.Unit, error) {
	unit, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransitionUnitStatus(unit.Status, req.Status) {
		return nil, errors.ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
			"from": unit.Status,
			"to":   req.Status,
		})
	}

	if err := uc.unitRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		uc.logger.Error("Failed to update unit status",
			zap.String("unit_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	// Команда переходит в searching - её дивизион тоже
	if req.Status == domain.UnitStatusSearching && unit.AssignedDivisionID != nil {
		if err := uc.divisionRepo.UpdateStatus(ctx, *unit.AssignedDivisionID, domain.DivisionStatusSearching); err != nil {
			uc.logger.Warn("Failed to mark division searching",
				zap.String("division_id", unit.AssignedDivisionID.String()),
				zap.Error(err))
		}
	}

	unit.Status = req.Status
	uc.logger.Info("Unit status updated",
		zap.String("unit_id", id.String()),
		zap.String("status", req.Status))
	return unit, nil
}

// Assign назначает команду на дивизион
func (uc *UnitUseCase) Assign(ctx context.Context, unitID uuid.UUID, req dto.AssignUnitRequest) (*domain.Unit, error) {
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	division, err := uc.divisionRepo.GetByID(ctx, req.DivisionID)
	if err != nil {
		return nil, err
	}
	if division.IncidentID != unit.IncidentID {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "division belongs to another incident",
		})
	}
	if division.AssignedUnitID != nil && *division.AssignedUnitID != unitID {
		return nil, errors.ErrDivisionAlreadyAssigned.WithDetails(map[string]interface{}{
			"assigned_unit_id": division.AssignedUnitID.String(),
		})
	}

	if !domain.CanTransitionUnitStatus(unit.Status, domain.UnitStatusAssigned) {
		return nil, errors.ErrInvalidStatusTransition.WithDetails(map[string]interface{}{
			"from": unit.Status,
			"to":   domain.UnitStatusAssigned,
		})
	}

	if err := uc.divisionRepo.Assign(ctx, req.DivisionID, unitID); err != nil {
		uc.logger.Error("Failed to assign division",
			zap.String("division_id", req.DivisionID.String()),
			zap.Error(err))
		return nil, err
	}
	if err := uc.unitRepo.AssignDivision(ctx, unitID, &req.DivisionID); err != nil {
		uc.logger.Error("Failed to link division to unit",
			zap.String("unit_id", unitID.String()),
			zap.Error(err))
		return nil, err
	}
	if err := uc.unitRepo.UpdateStatus(ctx, unitID, domain.UnitStatusAssigned); err != nil {
		uc.logger.Error("Failed to update unit status",
			zap.String("unit_id", unitID.String()),
			zap.Error(err))
		return nil, err
	}

	unit.AssignedDivisionID = &req.DivisionID
	unit.Status = domain.UnitStatusAssigned

	uc.logger.Info("Unit assigned to division",
		zap.String("unit_id", unitID.String()),
		zap.String("division_id", req.DivisionID.String()),
		zap.String("division_label", division.Label))

	return unit, nil
}

// ListByIncident возвращает команды инцидента
func (uc *UnitUseCase) ListByIncident(ctx context.Context, incidentID uuid.UUID) (*dto.UnitListResponse, error) {
	if _, err := uc.incidentRepo.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}

	units, err := uc.unitRepo.ListByIncident(ctx, incidentID)
	if err != nil {
		uc.logger.Error("Failed to list units",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	return &dto.UnitListResponse{
		Units: units,
		Total: len(units),
	}, nil
}
