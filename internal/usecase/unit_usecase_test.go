package usecase_test

import (
	"context"
	"testing"
	"time"

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

func newUnitUseCase(unitRepo *MockUnitRepository, divisionRepo *MockDivisionRepository, incidentRepo *MockIncidentRepository) *usecase.UnitUseCase {
	return usecase.NewUnitUseCase(unitRepo, divisionRepo, incidentRepo, zap.NewNop())
}

func TestUnitUseCase_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("registers new unit as checked_in", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		divisionRepo := &MockDivisionRepository{}
		incidentRepo := &MockIncidentRepository{}
		uc := newUnitUseCase(unitRepo, divisionRepo, incidentRepo)

		incidentID := uuid.New()
		incidentRepo.On("GetByID", ctx, incidentID).Return(&domain.Incident{
			ID:     incidentID,
			Status: domain.IncidentStatusActive,
		}, nil)
		unitRepo.On("GetByCallSign", ctx, incidentID, "GROUND-7").Return(nil, errors.ErrUnitNotFound)
		unitRepo.On("Upsert", ctx, mock.Anything).Return(nil)

		unit, err := uc.CheckIn(ctx, incidentID, dto.CheckInUnitRequest{
			CallSign:     "GROUND-7",
			Type:         domain.UnitTypeGround,
			TeamSize:     4,
			Capabilities: []string{"rope", "swiftwater"},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.UnitStatusCheckedIn, unit.Status)
		assert.NotEqual(t, uuid.Nil, unit.ID)
		assert.Equal(t, []string{"rope", "swiftwater"}, unit.Capabilities)
		unitRepo.AssertExpectations(t)
	})

	t.Run("re-check-in preserves identity and assignment", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		divisionRepo := &MockDivisionRepository{}
		incidentRepo := &MockIncidentRepository{}
		uc := newUnitUseCase(unitRepo, divisionRepo, incidentRepo)

		incidentID := uuid.New()
		existingID := uuid.New()
		divisionID := uuid.New()
		created := time.Now().UTC().Add(-2 * time.Hour)

		incidentRepo.On("GetByID", ctx, incidentID).Return(&domain.Incident{
			ID:     incidentID,
			Status: domain.IncidentStatusActive,
		}, nil)
		unitRepo.On("GetByCallSign", ctx, incidentID, "K9-2").Return(&domain.Unit{
			ID:                 existingID,
			IncidentID:         incidentID,
			CallSign:           "K9-2",
			Status:             domain.UnitStatusSearching,
			AssignedDivisionID: &divisionID,
			CreatedAt:          created,
		}, nil)
		unitRepo.On("Upsert", ctx, mock.Anything).Return(nil)

		unit, err := uc.CheckIn(ctx, incidentID, dto.CheckInUnitRequest{
			CallSign: "K9-2",
			Type:     domain.UnitTypeK9,
			TeamSize: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, existingID, unit.ID)
		assert.Equal(t, domain.UnitStatusSearching, unit.Status)
		assert.Equal(t, &divisionID, unit.AssignedDivisionID)
		assert.Equal(t, created, unit.CreatedAt)
	})

	t.Run("rejects check-in on closed incident", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		incidentRepo := &MockIncidentRepository{}
		uc := newUnitUseCase(unitRepo, &MockDivisionRepository{}, incidentRepo)

		incidentID := uuid.New()
		incidentRepo.On("GetByID", ctx, incidentID).Return(&domain.Incident{
			ID:     incidentID,
			Status: domain.IncidentStatusClosed,
		}, nil)

		unit, err := uc.CheckIn(ctx, incidentID, dto.CheckInUnitRequest{
			CallSign: "AIR-1",
			Type:     domain.UnitTypeAir,
			TeamSize: 3,
		})

		require.Error(t, err)
		assert.Nil(t, unit)
		unitRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestUnitUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("allows valid transition", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		uc := newUnitUseCase(unitRepo, &MockDivisionRepository{}, &MockIncidentRepository{})

		id := uuid.New()
		unitRepo.On("GetByID", ctx, id).Return(&domain.Unit{
			ID:     id,
			Status: domain.UnitStatusEnRoute,
		}, nil)
		unitRepo.On("UpdateStatus", ctx, id, domain.UnitStatusOnScene).Return(nil)

		unit, err := uc.UpdateStatus(ctx, id, dto.UpdateUnitStatusRequest{Status: domain.UnitStatusOnScene})

		require.NoError(t, err)
		assert.Equal(t, domain.UnitStatusOnScene, unit.Status)
		unitRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid transition", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		uc := newUnitUseCase(unitRepo, &MockDivisionRepository{}, &MockIncidentRepository{})

		id := uuid.New()
		unitRepo.On("GetByID", ctx, id).Return(&domain.Unit{
			ID:     id,
			Status: domain.UnitStatusCheckedIn,
		}, nil)

		unit, err := uc.UpdateStatus(ctx, id, dto.UpdateUnitStatusRequest{Status: domain.UnitStatusSearching})

		require.Error(t, err)
		assert.Nil(t, unit)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", appErr.Code)
		unitRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("marks assigned division searching", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		divisionRepo := &MockDivisionRepository{}
		uc := newUnitUseCase(unitRepo, divisionRepo, &MockIncidentRepository{})

		id := uuid.New()
		divisionID := uuid.New()
		unitRepo.On("GetByID", ctx, id).Return(&domain.Unit{
			ID:                 id,
			Status:             domain.UnitStatusOnScene,
			AssignedDivisionID: &divisionID,
		}, nil)
		unitRepo.On("UpdateStatus", ctx, id, domain.UnitStatusSearching).Return(nil)
		divisionRepo.On("UpdateStatus", ctx, divisionID, domain.DivisionStatusSearching).Return(nil)

		_, err := uc.UpdateStatus(ctx, id, dto.UpdateUnitStatusRequest{Status: domain.UnitStatusSearching})

		require.NoError(t, err)
		divisionRepo.AssertExpectations(t)
	})
}

func TestUnitUseCase_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns unit to free division", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		divisionRepo := &MockDivisionRepository{}
		uc := newUnitUseCase(unitRepo, divisionRepo, &MockIncidentRepository{})

		incidentID := uuid.New()
		unitID := uuid.New()
		divisionID := uuid.New()

		unitRepo.On("GetByID", ctx, unitID).Return(&domain.Unit{
			ID:         unitID,
			IncidentID: incidentID,
			Status:     domain.UnitStatusCheckedIn,
		}, nil)
		divisionRepo.On("GetByID", ctx, divisionID).Return(&domain.SearchDivision{
			ID:         divisionID,
			IncidentID: incidentID,
			Label:      "DIV-B",
			Status:     domain.DivisionStatusUnassigned,
		}, nil)
		divisionRepo.On("Assign", ctx, divisionID, unitID).Return(nil)
		unitRepo.On("AssignDivision", ctx, unitID, &divisionID).Return(nil)
		unitRepo.On("UpdateStatus", ctx, unitID, domain.UnitStatusAssigned).Return(nil)

		unit, err := uc.Assign(ctx, unitID, dto.AssignUnitRequest{DivisionID: divisionID})

		require.NoError(t, err)
		assert.Equal(t, domain.UnitStatusAssigned, unit.Status)
		assert.Equal(t, &divisionID, unit.AssignedDivisionID)
		unitRepo.AssertExpectations(t)
		divisionRepo.AssertExpectations(t)
	})

	t.Run("rejects division held by another unit", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		divisionRepo := &MockDivisionRepository{}
		uc := newUnitUseCase(unitRepo, divisionRepo, &MockIncidentRepository{})

		incidentID := uuid.New()
		unitID := uuid.New()
		otherUnitID := uuid.New()
		divisionID := uuid.New()

		unitRepo.On("GetByID", ctx, unitID).Return(&domain.Unit{
			ID:         unitID,
			IncidentID: incidentID,
			Status:     domain.UnitStatusCheckedIn,
		}, nil)
		divisionRepo.On("GetByID", ctx, divisionID).Return(&domain.SearchDivision{
			ID:             divisionID,
			IncidentID:     incidentID,
			Status:         domain.DivisionStatusAssigned,
			AssignedUnitID: &otherUnitID,
		}, nil)

		unit, err := uc.Assign(ctx, unitID, dto.AssignUnitRequest{DivisionID: divisionID})

		require.Error(t, err)
		assert.Nil(t, unit)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, "DIVISION_ALREADY_ASSIGNED", appErr.Code)
	})

	t.Run("rejects division from another incident", func(t *testing.T) {
		unitRepo := &MockUnitRepository{}
		divisionRepo := &MockDivisionRepository{}
		uc := newUnitUseCase(unitRepo, divisionRepo, &MockIncidentRepository{})

		unitID := uuid.New()
		divisionID := uuid.New()

		unitRepo.On("GetByID", ctx, unitID).Return(&domain.Unit{
			ID:         unitID,
			IncidentID: uuid.New(),
			Status:     domain.UnitStatusCheckedIn,
		}, nil)
		divisionRepo.On("GetByID", ctx, divisionID).Return(&domain.SearchDivision{
			ID:         divisionID,
			IncidentID: uuid.New(),
			Status:     domain.DivisionStatusUnassigned,
		}, nil)

		unit, err := uc.Assign(ctx, unitID, dto.AssignUnitRequest{DivisionID: divisionID})

		require.Error(t, err)
		assert.Nil(t, unit)
		divisionRepo.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
	})
}
