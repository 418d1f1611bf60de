package dto

import (
	"github.com/incident-microservice/internal/domain"
)

// IncidentResponse - инцидент со сгенерированными дивизионами
type IncidentResponse struct {
	Incident  *domain.Incident         `json:"incident"`
	Divisions []*domain.SearchDivision `json:"divisions,omitempty"`
	// DivisionsPending - генерация ушла в фоновый воркер
	DivisionsPending bool `json:"divisions_pending,omitempty"`
}

// IncidentListResponse - список инцидентов
type IncidentListResponse struct {
	Incidents []*domain.Incident `json:"incidents"`
	Total     int                `json:"total"`
}

// DivisionListResponse - дивизионы инцидента
type DivisionListResponse struct {
	Divisions []*domain.SearchDivision `json:"divisions"`
	Total     int                      `json:"total"`
	// TotalAreaM2 - суммарная площадь дивизионов
	TotalAreaM2 float64 `json:"total_area_m2"`
}

// RegenerateDivisionsResponse - результат перегенерации
type RegenerateDivisionsResponse struct {
	Removed   int                      `json:"removed"`
	Divisions []*domain.SearchDivision `json:"divisions"`
}

// UnitListResponse - команды инцидента
type UnitListResponse struct {
	Units []*domain.Unit `json:"units"`
	Total int            `json:"total"`
}

// NearestHospitalsResponse - ближайшие больницы
type NearestHospitalsResponse struct {
	Hospitals []*domain.Hospital `json:"hospitals"`
	Total     int                `json:"total"`
}

// StatsResponse - операционная сводка
type StatsResponse struct {
	Stats *domain.Statistics `json:"stats"`
}
