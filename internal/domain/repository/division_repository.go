package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/incident-microservice/internal/domain"
)

// DivisionRepository определяет методы для работы с поисковыми дивизионами
type DivisionRepository interface {
	// CreateBatch сохраняет сгенерированный набор дивизионов одного инцидента
	CreateBatch(ctx context.Context, divisions []*domain.SearchDivision) error

	// GetByID возвращает дивизион с границей по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SearchDivision, error)

	// ListByIncident возвращает дивизионы инцидента в порядке меток
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.SearchDivision, error)

	// UpdateStatus меняет статус дивизиона
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// UpdatePriority меняет приоритет дивизиона
	UpdatePriority(ctx context.Context, id uuid.UUID, priority string) error

	// Assign закрепляет команду за дивизионом и переводит его в assigned
	Assign(ctx context.Context, id uuid.UUID, unitID uuid.UUID) error

	// DeleteUnassigned удаляет неназначенные дивизионы инцидента
	// (перед повторной генерацией с новой целевой площадью)
	DeleteUnassigned(ctx context.Context, incidentID uuid.UUID) (int, error)

	// CountByStatus возвращает количество дивизионов по статусам
	CountByStatus(ctx context.Context) (map[string]int, error)
}
