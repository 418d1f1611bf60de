package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/incident-microservice/internal/domain"
)

// IncidentRepository определяет методы для работы с инцидентами
type IncidentRepository interface {
	// Create сохраняет инцидент вместе с полигоном зоны поиска
	Create(ctx context.Context, incident *domain.Incident) error

	// GetByID возвращает инцидент с зоной поиска по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Incident, error)

	// List возвращает инциденты, опционально отфильтрованные по статусу
	List(ctx context.Context, status string, limit int) ([]*domain.Incident, error)

	// UpdateStatus меняет статус инцидента
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// SetDivisionsPending выставляет флаг ожидания фоновой генерации дивизионов
	SetDivisionsPending(ctx context.Context, id uuid.UUID, pending bool) error

	// CountByStatus возвращает количество инцидентов по статусам
	CountByStatus(ctx context.Context) (map[string]int, error)
}
