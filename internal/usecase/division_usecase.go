package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/divider"
	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/pkg/errors"
	"github.com/incident-microservice/internal/usecase/dto"
)

// DivisionUseCase - use case для работы с поисковыми дивизионами
type DivisionUseCase struct {
	divisionRepo repository.DivisionRepository
	incidentRepo repository.IncidentRepository
	logger       *zap.Logger
}

// NewDivisionUseCase - создание нового DivisionUseCase
func NewDivisionUseCase(
	divisionRepo repository.DivisionRepository,
	incidentRepo repository.IncidentRepository,
	logger *zap.Logger,
) *DivisionUseCase {
	return &DivisionUseCase{
		divisionRepo: divisionRepo,
		incidentRepo: incidentRepo,
		logger:       logger,
	}
}

// ListByIncident возвращает дивизионы инцидента с суммарной площадью
func (uc *DivisionUseCase) ListByIncident(ctx context.Context, incidentID uuid.UUID) (*dto.DivisionListResponse, error) {
	if _, err := uc.incidentRepo.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}

	divisions, err := uc.divisionRepo.ListByIncident(ctx, incidentID)
	if err != nil {
		uc.logger.Error("Failed to list divisions",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	var totalArea float64
	for _, d := range divisions {
		totalArea += d.AreaM2
	}

	return &dto.DivisionListResponse{
		Divisions:   divisions,
		Total:       len(divisions),
		TotalAreaM2: totalArea,
	}, nil
}

// Update меняет статус и/или приоритет дивизиона
func (uc *DivisionUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDivisionRequest) (*domain.SearchDivision, error) {
	division, err := uc.divisionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != division.Status {
		if err := uc.divisionRepo.UpdateStatus(ctx, id, *req.Status); err != nil {
			uc.logger.Error("Failed to update division status",
				zap.String("division_id", id.String()),
				zap.Error(err))
			return nil, err
		}
		division.Status = *req.Status
	}

	if req.Priority != nil && *req.Priority != division.Priority {
		if err := uc.divisionRepo.UpdatePriority(ctx, id, *req.Priority); err != nil {
			uc.logger.Error("Failed to update division priority",
				zap.String("division_id", id.String()),
				zap.Error(err))
			return nil, err
		}
		division.Priority = *req.Priority
	}

	return division, nil
}

// CreateManual создаёт дивизион по вручную нарисованной границе.
// Запасной путь, когда автогенерация не сработала для зоны поиска.
func (uc *DivisionUseCase) CreateManual(ctx context.Context, incidentID uuid.UUID, req dto.CreateDivisionRequest) (*domain.SearchDivision, error) {
	if _, err := uc.incidentRepo.GetByID(ctx, incidentID); err != nil {
		return nil, err
	}

	area, centroid, err := divider.Measure(req.Boundary)
	if err != nil {
		return nil, mapDividerError(err)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.DivisionPriorityLow
	}

	now := time.Now().UTC()
	division := &domain.SearchDivision{
		ID:         uuid.New(),
		IncidentID: incidentID,
		Label:      req.Label,
		Boundary:   req.Boundary.Closed(),
		AreaM2:     area,
		Centroid:   centroid,
		Priority:   priority,
		Status:     domain.DivisionStatusUnassigned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.divisionRepo.CreateBatch(ctx, []*domain.SearchDivision{division}); err != nil {
		uc.logger.Error("Failed to create manual division",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Manual division created",
		zap.String("incident_id", incidentID.String()),
		zap.String("label", division.Label),
		zap.Float64("area_m2", area))

	return division, nil
}

// Regenerate перегенерирует дивизионы инцидента с новой целевой площадью.
// Разрешено только пока ни один дивизион не назначен команде: иначе свежие
// метки конфликтовали бы с уже выданными назначениями.
func (uc *DivisionUseCase) Regenerate(ctx context.Context, incidentID uuid.UUID, req dto.RegenerateDivisionsRequest) (*dto.RegenerateDivisionsResponse, error) {
	incident, err := uc.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if len(incident.SearchArea) == 0 {
		return nil, errors.ErrInvalidSearchArea.WithDetails(map[string]interface{}{
			"reason": "incident has no search area",
		})
	}

	existing, err := uc.divisionRepo.ListByIncident(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	for _, d := range existing {
		if d.AssignedUnitID != nil {
			return nil, errors.ErrAssignmentsExist
		}
	}

	generated, err := divider.Generate(incident.SearchArea, req.TargetAreaM2)
	if err != nil {
		return nil, mapDividerError(err)
	}

	removed, err := uc.divisionRepo.DeleteUnassigned(ctx, incidentID)
	if err != nil {
		uc.logger.Error("Failed to delete unassigned divisions",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	divisions := DivisionsToDomain(incidentID, generated, time.Now().UTC())
	if err := uc.divisionRepo.CreateBatch(ctx, divisions); err != nil {
		uc.logger.Error("Failed to persist regenerated divisions",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Divisions regenerated",
		zap.String("incident_id", incidentID.String()),
		zap.Int("removed", removed),
		zap.Int("created", len(divisions)),
		zap.Float64("target_area_m2", req.TargetAreaM2))

	return &dto.RegenerateDivisionsResponse{
		Removed:   removed,
		Divisions: divisions,
	}, nil
}

// GenerateAndStore генерирует и сохраняет дивизионы для инцидента.
// Вызывается фоновым воркером для больших зон поиска.
func (uc *DivisionUseCase) GenerateAndStore(ctx context.Context, incidentID uuid.UUID, searchArea domain.Ring, targetAreaM2 float64) ([]*domain.SearchDivision, error) {
	generated, err := divider.Generate(searchArea, targetAreaM2)
	if err != nil {
		return nil, mapDividerError(err)
	}

	divisions := DivisionsToDomain(incidentID, generated, time.Now().UTC())
	if err := uc.divisionRepo.CreateBatch(ctx, divisions); err != nil {
		uc.logger.Error("Failed to persist divisions",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	if err := uc.incidentRepo.SetDivisionsPending(ctx, incidentID, false); err != nil {
		uc.logger.Error("Failed to clear divisions pending flag",
			zap.String("incident_id", incidentID.String()),
			zap.Error(err))
		return nil, err
	}

	return divisions, nil
}
