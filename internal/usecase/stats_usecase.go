package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/usecase/dto"
)

const statsCacheKey = "stats:current"

// StatsUseCase - use case для операционной сводки
type StatsUseCase struct {
	incidentRepo repository.IncidentRepository
	divisionRepo repository.DivisionRepository
	unitRepo     repository.UnitRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewStatsUseCase - создание нового StatsUseCase
func NewStatsUseCase(
	incidentRepo repository.IncidentRepository,
	divisionRepo repository.DivisionRepository,
	unitRepo repository.UnitRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		incidentRepo: incidentRepo,
		divisionRepo: divisionRepo,
		unitRepo:     unitRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// Get возвращает сводку по инцидентам, дивизионам и командам
func (uc *StatsUseCase) Get(ctx context.Context) (*dto.StatsResponse, error) {
	if cached, err := uc.cacheRepo.Get(ctx, statsCacheKey); err == nil && cached != nil {
		var stats domain.Statistics
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &dto.StatsResponse{Stats: &stats}, nil
		}
	}

	incidentCounts, err := uc.incidentRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Error("Failed to count incidents", zap.Error(err))
		return nil, err
	}

	divisionCounts, err := uc.divisionRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Error("Failed to count divisions", zap.Error(err))
		return nil, err
	}

	unitCounts, err := uc.unitRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Error("Failed to count units", zap.Error(err))
		return nil, err
	}

	total := 0
	for _, n := range incidentCounts {
		total += n
	}

	stats := &domain.Statistics{
		ActiveIncidents:   incidentCounts[domain.IncidentStatusActive],
		TotalIncidents:    total,
		DivisionsByStatus: divisionCounts,
		UnitsByStatus:     unitCounts,
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := uc.cacheRepo.Set(ctx, statsCacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache stats", zap.Error(err))
		}
	}

	return &dto.StatsResponse{Stats: stats}, nil
}
