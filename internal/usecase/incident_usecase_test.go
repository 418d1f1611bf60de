package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/domain"
	"github.com/incident-microservice/internal/pkg/errors"
	"github.com/incident-microservice/internal/usecase"
	"github.com/incident-microservice/internal/usecase/dto"
)

// testSquare строит квадратную зону поиска со стороной sideM метров
func testSquare(sideM float64) domain.Ring {
	const centerLat, centerLon = 38.396, -85.442
	halfLat := sideM / 2 / 111320.0
	halfLon := sideM / 2 / (111320.0 * math.Cos(centerLat*math.Pi/180))
	return domain.Ring{
		{Lon: centerLon - halfLon, Lat: centerLat - halfLat},
		{Lon: centerLon + halfLon, Lat: centerLat - halfLat},
		{Lon: centerLon + halfLon, Lat: centerLat + halfLat},
		{Lon: centerLon - halfLon, Lat: centerLat + halfLat},
	}
}

func TestIncidentUseCase_Create(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("generates divisions synchronously for small search area", func(t *testing.T) {
		incidentRepo := &MockIncidentRepository{}
		divisionRepo := &MockDivisionRepository{}
		streamRepo := &MockStreamRepository{}
		uc := usecase.NewIncidentUseCase(incidentRepo, divisionRepo, streamRepo, logger, 40000, 500)

		incidentRepo.On("Create", ctx, mock.Anything).Return(nil)
		divisionRepo.On("CreateBatch", ctx, mock.Anything).Return(nil)

		resp, err := uc.Create(ctx, dto.CreateIncidentRequest{
			Name:       "Lost hiker near ridge",
			Type:       domain.IncidentTypeMissingPerson,
			SearchArea: testSquare(201),
		})

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.False(t, resp.DivisionsPending)
		require.Len(t, resp.Divisions, 1)
		assert.Equal(t, "DIV-A", resp.Divisions[0].Label)
		assert.Equal(t, domain.DivisionStatusUnassigned, resp.Divisions[0].Status)
		assert.Equal(t, domain.DivisionPriorityLow, resp.Divisions[0].Priority)
		assert.InDelta(t, 40401, resp.Divisions[0].AreaM2, 40401*0.05)
		assert.Equal(t, resp.Incident.ID, resp.Divisions[0].IncidentID)

		incidentRepo.AssertExpectations(t)
		divisionRepo.AssertExpectations(t)
		streamRepo.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("defers generation to worker for large grids", func(t *testing.T) {
		incidentRepo := &MockIncidentRepository{}
		divisionRepo := &MockDivisionRepository{}
		streamRepo := &MockStreamRepository{}
		// Порог в 3 ячейки: сетка 3x3 для target 10000 уходит в фон
		uc := usecase.NewIncidentUseCase(incidentRepo, divisionRepo, streamRepo, logger, 40000, 3)

		incidentRepo.On("Create", ctx, mock.Anything).Return(nil)
		streamRepo.On("PublishToStream", ctx, domain.StreamDivisionGenerate, mock.Anything).Return(nil)

		resp, err := uc.Create(ctx, dto.CreateIncidentRequest{
			Name:         "Flooded valley sweep",
			Type:         domain.IncidentTypeFlood,
			SearchArea:   testSquare(201),
			TargetAreaM2: 10000,
		})

		require.NoError(t, err)
		assert.True(t, resp.DivisionsPending)
		assert.True(t, resp.Incident.DivisionsPending)
		assert.Empty(t, resp.Divisions)

		incidentRepo.AssertExpectations(t)
		streamRepo.AssertExpectations(t)
		divisionRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("creates incident without search area", func(t *testing.T) {
		incidentRepo := &MockIncidentRepository{}
		uc := usecase.NewIncidentUseCase(incidentRepo, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		incidentRepo.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := uc.Create(ctx, dto.CreateIncidentRequest{
			Name: "Structure fire downtown",
			Type: domain.IncidentTypeFire,
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Divisions)
		assert.Equal(t, domain.IncidentStatusActive, resp.Incident.Status)
		assert.Equal(t, 40000.0, resp.Incident.TargetAreaM2)

		incidentRepo.AssertExpectations(t)
	})

	t.Run("rejects degenerate search area", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(&MockIncidentRepository{}, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		resp, err := uc.Create(ctx, dto.CreateIncidentRequest{
			Name: "Bad polygon",
			Type: domain.IncidentTypeOther,
			SearchArea: domain.Ring{
				{Lon: -85.442, Lat: 38.396},
				{Lon: -85.441, Lat: 38.396},
			},
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_SEARCH_AREA", appErr.Code)
	})

	t.Run("rejects out of range vertex", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(&MockIncidentRepository{}, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		_, err := uc.Create(ctx, dto.CreateIncidentRequest{
			Name: "Bad vertex",
			Type: domain.IncidentTypeOther,
			SearchArea: domain.Ring{
				{Lon: -85.442, Lat: 999},
				{Lon: -85.441, Lat: 38.396},
				{Lon: -85.441, Lat: 38.397},
			},
		})

		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_COORDINATES", appErr.Code)
	})

	t.Run("rejects negative target area", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(&MockIncidentRepository{}, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		_, err := uc.Create(ctx, dto.CreateIncidentRequest{
			Name:         "Bad target",
			Type:         domain.IncidentTypeOther,
			SearchArea:   testSquare(201),
			TargetAreaM2: -5,
		})

		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_TARGET_AREA", appErr.Code)
	})
}

func TestIncidentUseCase_List(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("uses default limit", func(t *testing.T) {
		incidentRepo := &MockIncidentRepository{}
		uc := usecase.NewIncidentUseCase(incidentRepo, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		incidentRepo.On("List", ctx, "", 50).Return([]*domain.Incident{
			{ID: uuid.New(), Name: "One", Status: domain.IncidentStatusActive},
		}, nil)

		resp, err := uc.List(ctx, "", 0)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		incidentRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		uc := usecase.NewIncidentUseCase(&MockIncidentRepository{}, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		resp, err := uc.List(ctx, "bogus", 10)

		require.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestIncidentUseCase_GetByID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns incident with divisions", func(t *testing.T) {
		incidentRepo := &MockIncidentRepository{}
		divisionRepo := &MockDivisionRepository{}
		uc := usecase.NewIncidentUseCase(incidentRepo, divisionRepo, &MockStreamRepository{}, logger, 40000, 500)

		id := uuid.New()
		incidentRepo.On("GetByID", ctx, id).Return(&domain.Incident{ID: id, Name: "Ridge search"}, nil)
		divisionRepo.On("ListByIncident", ctx, id).Return([]*domain.SearchDivision{
			{ID: uuid.New(), IncidentID: id, Label: "DIV-A"},
			{ID: uuid.New(), IncidentID: id, Label: "DIV-B"},
		}, nil)

		resp, err := uc.GetByID(ctx, id)

		require.NoError(t, err)
		assert.Len(t, resp.Divisions, 2)
		incidentRepo.AssertExpectations(t)
		divisionRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		incidentRepo := &MockIncidentRepository{}
		uc := usecase.NewIncidentUseCase(incidentRepo, &MockDivisionRepository{}, &MockStreamRepository{}, logger, 40000, 500)

		id := uuid.New()
		incidentRepo.On("GetByID", ctx, id).Return(nil, errors.ErrIncidentNotFound)

		resp, err := uc.GetByID(ctx, id)

		assert.Equal(t, errors.ErrIncidentNotFound, err)
		assert.Nil(t, resp)
	})
}
