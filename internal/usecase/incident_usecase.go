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
	"github.com/incident-microservice/internal/pkg/utils"
	"github.com/incident-microservice/internal/usecase/dto"
)

// IncidentUseCase - use case для создания и ведения инцидентов
type IncidentUseCase struct {
	incidentRepo repository.IncidentRepository
	divisionRepo repository.DivisionRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger

	defaultTargetAreaM2 float64
	asyncCellThreshold  int
}

// NewIncidentUseCase - создание нового IncidentUseCase
func NewIncidentUseCase(
	incidentRepo repository.IncidentRepository,
	divisionRepo repository.DivisionRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	defaultTargetAreaM2 float64,
	asyncCellThreshold int,
) *IncidentUseCase {
	return &IncidentUseCase{
		incidentRepo:        incidentRepo,
		divisionRepo:        divisionRepo,
		streamRepo:          streamRepo,
		logger:              logger,
		defaultTargetAreaM2: defaultTargetAreaM2,
		asyncCellThreshold:  asyncCellThreshold,
	}
}

// Create создаёт инцидент; при наличии зоны поиска генерирует дивизионы.
// Маленькие сетки режутся синхронно, большие уходят в фоновый воркер
// через Redis Stream, чтобы не блокировать обработку запроса.
func (uc *IncidentUseCase) Create(ctx context.Context, req dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	for i, v := range req.SearchArea {
		if !utils.ValidateCoordinates(v.Lat, v.Lon) {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"vertex_index": i,
			})
		}
	}

	targetArea := req.TargetAreaM2
	if targetArea == 0 {
		targetArea = uc.defaultTargetAreaM2
	}

	now := time.Now().UTC()
	incident := &domain.Incident{
		ID:           uuid.New(),
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		Status:       domain.IncidentStatusActive,
		CommandLat:   req.CommandLat,
		CommandLon:   req.CommandLon,
		SearchArea:   req.SearchArea,
		TargetAreaM2: targetArea,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Без зоны поиска - инцидент без дивизионов, ручное создание остаётся
	// запасным путём
	if len(req.SearchArea) == 0 {
		if err := uc.incidentRepo.Create(ctx, incident); err != nil {
			uc.logger.Error("Failed to create incident", zap.Error(err))
			return nil, err
		}
		return &dto.IncidentResponse{Incident: incident}, nil
	}

	// Валидация геометрии и оценка размера сетки до любой записи в БД
	cols, rows, err := divider.GridSize(req.SearchArea, targetArea)
	if err != nil {
		return nil, mapDividerError(err)
	}

	if cols*rows > uc.asyncCellThreshold {
		incident.DivisionsPending = true
		if err := uc.incidentRepo.Create(ctx, incident); err != nil {
			uc.logger.Error("Failed to create incident", zap.Error(err))
			return nil, err
		}

		event := domain.DivisionGenerateEvent{
			IncidentID:   incident.ID,
			SearchArea:   req.SearchArea,
			TargetAreaM2: targetArea,
		}
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamDivisionGenerate, event); err != nil {
			uc.logger.Error("Failed to publish division generate event",
				zap.String("incident_id", incident.ID.String()),
				zap.Error(err))
			return nil, err
		}

		uc.logger.Info("Division generation deferred to worker",
			zap.String("incident_id", incident.ID.String()),
			zap.Int("grid_cells", cols*rows))

		return &dto.IncidentResponse{Incident: incident, DivisionsPending: true}, nil
	}

	generated, err := divider.Generate(req.SearchArea, targetArea)
	if err != nil {
		return nil, mapDividerError(err)
	}

	if err := uc.incidentRepo.Create(ctx, incident); err != nil {
		uc.logger.Error("Failed to create incident", zap.Error(err))
		return nil, err
	}

	divisions := DivisionsToDomain(incident.ID, generated, now)
	if err := uc.divisionRepo.CreateBatch(ctx, divisions); err != nil {
		uc.logger.Error("Failed to persist divisions",
			zap.String("incident_id", incident.ID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Incident created",
		zap.String("incident_id", incident.ID.String()),
		zap.Int("divisions", len(divisions)),
		zap.Float64("target_area_m2", targetArea))

	return &dto.IncidentResponse{Incident: incident, Divisions: divisions}, nil
}

// GetByID возвращает инцидент вместе с дивизионами
func (uc *IncidentUseCase) GetByID(ctx context.Context, id uuid.UUID) (*dto.IncidentResponse, error) {
	incident, err := uc.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	divisions, err := uc.divisionRepo.ListByIncident(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to list divisions",
			zap.String("incident_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	return &dto.IncidentResponse{
		Incident:         incident,
		Divisions:        divisions,
		DivisionsPending: incident.DivisionsPending,
	}, nil
}

// List возвращает инциденты с опциональным фильтром по статусу
func (uc *IncidentUseCase) List(ctx context.Context, status string, limit int) (*dto.IncidentListResponse, error) {
	if status != "" && !domain.IsValidIncidentStatus(status) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"status": status,
		})
	}
	if limit == 0 {
		limit = 50
	}

	incidents, err := uc.incidentRepo.List(ctx, status, limit)
	if err != nil {
		uc.logger.Error("Failed to list incidents", zap.Error(err))
		return nil, err
	}

	return &dto.IncidentListResponse{
		Incidents: incidents,
		Total:     len(incidents),
	}, nil
}

// UpdateStatus меняет статус инцидента
func (uc *IncidentUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateIncidentStatusRequest) error {
	if _, err := uc.incidentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.incidentRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		uc.logger.Error("Failed to update incident status",
			zap.String("incident_id", id.String()),
			zap.String("status", req.Status),
			zap.Error(err))
		return err
	}

	uc.logger.Info("Incident status updated",
		zap.String("incident_id", id.String()),
		zap.String("status", req.Status))
	return nil
}

// DivisionsToDomain преобразует результат генератора в доменные дивизионы
func DivisionsToDomain(incidentID uuid.UUID, generated []divider.Division, now time.Time) []*domain.SearchDivision {
	divisions := make([]*domain.SearchDivision, len(generated))
	for i, g := range generated {
		divisions[i] = &domain.SearchDivision{
			ID:         uuid.New(),
			IncidentID: incidentID,
			Label:      g.Label,
			Boundary:   g.Boundary,
			AreaM2:     g.AreaM2,
			Centroid:   g.Centroid,
			Priority:   g.Priority,
			Status:     g.Status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	return divisions
}
