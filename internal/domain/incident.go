package domain

import (
	"time"

	"github.com/google/uuid"
)

// Статусы инцидента
const (
	IncidentStatusActive    = "active"
	IncidentStatusContained = "contained"
	IncidentStatusClosed    = "closed"
)

// Типы инцидентов
const (
	IncidentTypeMissingPerson = "missing_person"
	IncidentTypeFire          = "fire"
	IncidentTypeFlood         = "flood"
	IncidentTypeHazmat        = "hazmat"
	IncidentTypeOther         = "other"
)

// Incident - инцидент с зоной поиска, нарисованной оператором на карте
type Incident struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Type         string    `json:"type" db:"type"`
	Description  string    `json:"description" db:"description"`
	Status       string    `json:"status" db:"status"`
	CommandLat   *float64  `json:"command_lat,omitempty" db:"command_lat"`
	CommandLon   *float64  `json:"command_lon,omitempty" db:"command_lon"`
	SearchArea   Ring      `json:"search_area,omitempty" db:"-"`
	TargetAreaM2 float64   `json:"target_area_m2" db:"target_area_m2"`
	// DivisionsPending - дивизионы генерируются асинхронно в воркере
	DivisionsPending bool      `json:"divisions_pending" db:"divisions_pending"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// IsValidIncidentStatus проверяет известность статуса инцидента
func IsValidIncidentStatus(s string) bool {
	switch s {
	case IncidentStatusActive, IncidentStatusContained, IncidentStatusClosed:
		return true
	}
	return false
}
