package repository

import (
	"context"

	"github.com/incident-microservice/internal/domain"
)

// HospitalRepository определяет методы для работы со справочником больниц
type HospitalRepository interface {
	// GetNearest возвращает ближайшие к точке больницы с дистанцией в км
	GetNearest(ctx context.Context, lat, lon float64, limit int) ([]*domain.Hospital, error)
}
