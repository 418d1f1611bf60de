package domain

import (
	"time"

	"github.com/google/uuid"
)

// Статусы поисковой команды
const (
	UnitStatusCheckedIn    = "checked_in"
	UnitStatusAssigned     = "assigned"
	UnitStatusEnRoute      = "en_route"
	UnitStatusOnScene      = "on_scene"
	UnitStatusSearching    = "searching"
	UnitStatusReturned     = "returned"
	UnitStatusOutOfService = "out_of_service"
)

// Типы команд
const (
	UnitTypeGround  = "ground"
	UnitTypeK9      = "k9"
	UnitTypeAir     = "air"
	UnitTypeMedical = "medical"
	UnitTypeWater   = "water"
)

// Unit - поисковая команда, зарегистрированная на инциденте
type Unit struct {
	ID         uuid.UUID `json:"id" db:"id"`
	IncidentID uuid.UUID `json:"incident_id" db:"incident_id"`
	CallSign   string    `json:"call_sign" db:"call_sign"`
	Type       string    `json:"type" db:"type"`
	TeamSize   int       `json:"team_size" db:"team_size"`
	Status     string    `json:"status" db:"status"`
	// Capabilities - свободный список возможностей (rope, swiftwater, ...)
	Capabilities       []string   `json:"capabilities,omitempty" db:"-"`
	AssignedDivisionID *uuid.UUID `json:"assigned_division_id,omitempty" db:"assigned_division_id"`
	LastCheckInAt      time.Time  `json:"last_check_in_at" db:"last_check_in_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// unitTransitions - разрешённые переходы статусов команды.
// out_of_service достижим из любого статуса, возврат из него - через checked_in.
var unitTransitions = map[string][]string{
	UnitStatusCheckedIn:    {UnitStatusAssigned, UnitStatusOutOfService},
	UnitStatusAssigned:     {UnitStatusEnRoute, UnitStatusCheckedIn, UnitStatusOutOfService},
	UnitStatusEnRoute:      {UnitStatusOnScene, UnitStatusOutOfService},
	UnitStatusOnScene:      {UnitStatusSearching, UnitStatusOutOfService},
	UnitStatusSearching:    {UnitStatusReturned, UnitStatusOutOfService},
	UnitStatusReturned:     {UnitStatusCheckedIn, UnitStatusAssigned, UnitStatusOutOfService},
	UnitStatusOutOfService: {UnitStatusCheckedIn},
}

// CanTransitionUnitStatus проверяет допустимость перехода статуса
func CanTransitionUnitStatus(from, to string) bool {
	for _, allowed := range unitTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidUnitType проверяет известность типа команды
func IsValidUnitType(t string) bool {
	switch t {
	case UnitTypeGround, UnitTypeK9, UnitTypeAir, UnitTypeMedical, UnitTypeWater:
		return true
	}
	return false
}
