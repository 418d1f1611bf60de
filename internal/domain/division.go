package domain

import (
	"time"

	"github.com/google/uuid"
)

// Статусы поискового дивизиона
const (
	DivisionStatusUnassigned = "unassigned"
	DivisionStatusAssigned   = "assigned"
	DivisionStatusSearching  = "searching"
	DivisionStatusSearched   = "searched"
)

// Приоритеты дивизиона
const (
	DivisionPriorityLow    = "low"
	DivisionPriorityMedium = "medium"
	DivisionPriorityHigh   = "high"
)

// SearchDivision - участок зоны поиска, назначаемый одной команде
type SearchDivision struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	IncidentID uuid.UUID  `json:"incident_id" db:"incident_id"`
	Label      string     `json:"label" db:"label"`
	Boundary   Ring       `json:"boundary" db:"-"`
	AreaM2     float64    `json:"area_m2" db:"area_m2"`
	Centroid   Coordinate `json:"centroid" db:"-"`
	Priority   string     `json:"priority" db:"priority"`
	Status     string     `json:"status" db:"status"`
	// AssignedUnitID пустой до назначения команды
	AssignedUnitID *uuid.UUID `json:"assigned_unit_id,omitempty" db:"assigned_unit_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// IsValidDivisionStatus проверяет известность статуса дивизиона
func IsValidDivisionStatus(s string) bool {
	switch s {
	case DivisionStatusUnassigned, DivisionStatusAssigned,
		DivisionStatusSearching, DivisionStatusSearched:
		return true
	}
	return false
}

// IsValidDivisionPriority проверяет известность приоритета дивизиона
func IsValidDivisionPriority(p string) bool {
	switch p {
	case DivisionPriorityLow, DivisionPriorityMedium, DivisionPriorityHigh:
		return true
	}
	return false
}
