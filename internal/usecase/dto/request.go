package dto

import (
	"github.com/google/uuid"

	"github.com/incident-microservice/internal/domain"
)

// CreateIncidentRequest - запрос на создание инцидента.
// SearchArea - контур зоны поиска в парах [lon, lat]; при его наличии
// дивизионы генерируются автоматически.
type CreateIncidentRequest struct {
	Name        string      `json:"name" validate:"required,min=2,max=200"`
	Type        string      `json:"type" validate:"required,oneof=missing_person fire flood hazmat other"`
	Description string      `json:"description" validate:"max=2000"`
	CommandLat  *float64    `json:"command_lat,omitempty" validate:"omitempty,min=-90,max=90"`
	CommandLon  *float64    `json:"command_lon,omitempty" validate:"omitempty,min=-180,max=180"`
	SearchArea  domain.Ring `json:"search_area,omitempty"`
	// TargetAreaM2 - желаемая площадь дивизиона; 0 означает значение из конфигурации
	TargetAreaM2 float64 `json:"target_area_m2,omitempty" validate:"omitempty,gt=0"`
}

// UpdateIncidentStatusRequest - запрос на смену статуса инцидента
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active contained closed"`
}

// RegenerateDivisionsRequest - запрос на перегенерацию дивизионов
// с новой целевой площадью (затрагивает только неназначенные)
type RegenerateDivisionsRequest struct {
	TargetAreaM2 float64 `json:"target_area_m2" validate:"required,gt=0"`
}

// CreateDivisionRequest - ручное создание дивизиона
// (запасной путь, когда автогенерация не сработала)
type CreateDivisionRequest struct {
	Label    string      `json:"label" validate:"required,min=1,max=20"`
	Boundary domain.Ring `json:"boundary" validate:"required"`
	Priority string      `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateDivisionRequest - обновление статуса/приоритета дивизиона
type UpdateDivisionRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=unassigned assigned searching searched"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// CheckInUnitRequest - регистрация команды на инциденте.
// Повторная отметка с тем же позывным обновляет существующую команду.
type CheckInUnitRequest struct {
	CallSign     string   `json:"call_sign" validate:"required,min=1,max=50"`
	Type         string   `json:"type" validate:"required,oneof=ground k9 air medical water"`
	TeamSize     int      `json:"team_size" validate:"required,min=1,max=50"`
	Capabilities []string `json:"capabilities,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateUnitStatusRequest - запрос на смену статуса команды
type UpdateUnitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=checked_in assigned en_route on_scene searching returned out_of_service"`
}

// AssignUnitRequest - назначение команды на дивизион
type AssignUnitRequest struct {
	DivisionID uuid.UUID `json:"division_id" validate:"required"`
}

// NearestHospitalsRequest - поиск ближайших больниц к точке
type NearestHospitalsRequest struct {
	Lat   float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon   float64 `json:"lon" validate:"required,min=-180,max=180"`
	Limit int     `json:"limit" validate:"omitempty,min=1,max=20"`
}
