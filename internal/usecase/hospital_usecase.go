package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain/repository"
	"github.com/incident-microservice/internal/pkg/errors"
	"github.com/incident-microservice/internal/pkg/utils"
	"github.com/incident-microservice/internal/usecase/dto"
)

// HospitalUseCase - use case для поиска ближайших больниц
type HospitalUseCase struct {
	hospitalRepo repository.HospitalRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewHospitalUseCase - создание нового HospitalUseCase
func NewHospitalUseCase(
	hospitalRepo repository.HospitalRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *HospitalUseCase {
	return &HospitalUseCase{
		hospitalRepo: hospitalRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// Nearest возвращает ближайшие к точке больницы (с кешированием)
func (uc *HospitalUseCase) Nearest(ctx context.Context, req dto.NearestHospitalsRequest) (*dto.NearestHospitalsResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if req.Limit == 0 {
		req.Limit = 5
	}

	// Ключ кеша округляет координаты до ~11 м, чтобы соседние запросы
	// с карты попадали в одну запись
	key := fmt.Sprintf("hospitals:nearest:%.4f:%.4f:%d", req.Lat, req.Lon, req.Limit)

	if cached, err := uc.cacheRepo.Get(ctx, key); err == nil && cached != nil {
		var resp dto.NearestHospitalsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("Failed to unmarshal cached hospitals", zap.String("key", key))
	}

	hospitals, err := uc.hospitalRepo.GetNearest(ctx, req.Lat, req.Lon, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to get nearest hospitals",
			zap.Float64("lat", req.Lat),
			zap.Float64("lon", req.Lon),
			zap.Error(err))
		return nil, err
	}

	resp := &dto.NearestHospitalsResponse{
		Hospitals: hospitals,
		Total:     len(hospitals),
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache hospitals", zap.String("key", key), zap.Error(err))
		}
	}

	return resp, nil
}
