package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/usecase"
	"github.com/incident-microservice/internal/usecase/dto"
)

func TestHospitalUseCase_Nearest(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	ttl := 10 * time.Minute

	t.Run("queries repository on cache miss", func(t *testing.T) {
		hospitalRepo := &MockHospitalRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := usecase.NewHospitalUseCase(hospitalRepo, cacheRepo, logger, ttl)

		km := 4.2
		cacheRepo.On("Get", ctx, mock.Anything).Return(nil, nil)
		hospitalRepo.On("GetNearest", ctx, 38.396, -85.442, 5).Return([]*domain.Hospital{
			{ID: 1, Name: "Baptist Health", DistanceKm: &km},
		}, nil)
		cacheRepo.On("Set", ctx, mock.Anything, mock.Anything, ttl).Return(nil)

		resp, err := uc.Nearest(ctx, dto.NearestHospitalsRequest{Lat: 38.396, Lon: -85.442})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Baptist Health", resp.Hospitals[0].Name)
		hospitalRepo.AssertExpectations(t)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("serves cached result", func(t *testing.T) {
		hospitalRepo := &MockHospitalRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := usecase.NewHospitalUseCase(hospitalRepo, cacheRepo, logger, ttl)

		cached, _ := json.Marshal(dto.NearestHospitalsResponse{
			Hospitals: []*domain.Hospital{{ID: 2, Name: "Norton Clark"}},
			Total:     1,
		})
		cacheRepo.On("Get", ctx, mock.Anything).Return(cached, nil)

		resp, err := uc.Nearest(ctx, dto.NearestHospitalsRequest{Lat: 38.396, Lon: -85.442, Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, "Norton Clark", resp.Hospitals[0].Name)
		hospitalRepo.AssertNotCalled(t, "GetNearest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		uc := usecase.NewHospitalUseCase(&MockHospitalRepository{}, &MockCacheRepository{}, logger, ttl)

		resp, err := uc.Nearest(ctx, dto.NearestHospitalsRequest{Lat: 200, Lon: -85.442})

		require.Error(t, err)
		assert.Nil(t, resp)
	})
}
