package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/incident-microservice/internal/domain"
)

// UnitRepository определяет методы для работы с поисковыми командами
type UnitRepository interface {
	// Upsert создаёт команду или обновляет существующую по позывному в рамках инцидента
	Upsert(ctx context.Context, unit *domain.Unit) error

	// GetByID возвращает команду по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error)

	// GetByCallSign возвращает команду инцидента по позывному
	GetByCallSign(ctx context.Context, incidentID uuid.UUID, callSign string) (*domain.Unit, error)

	// ListByIncident возвращает команды инцидента
	ListByIncident(ctx context.Context, incidentID uuid.UUID) ([]*domain.Unit, error)

	// UpdateStatus меняет статус команды и время последней отметки
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// AssignDivision закрепляет дивизион за командой
	AssignDivision(ctx context.Context, id uuid.UUID, divisionID *uuid.UUID) error

	// CountByStatus возвращает количество команд по статусам
	CountByStatus(ctx context.Context) (map[string]int, error)
}
