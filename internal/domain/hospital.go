package domain

// Hospital - больница из справочника для поиска ближайших к инциденту
type Hospital struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Address     string   `json:"address" db:"address"`
	Phone       string   `json:"phone" db:"phone"`
	Lat         float64  `json:"lat" db:"lat"`
	Lon         float64  `json:"lon" db:"lon"`
	TraumaLevel *int     `json:"trauma_level,omitempty" db:"trauma_level"`
	Helipad     bool     `json:"helipad" db:"helipad"`
	DistanceKm  *float64 `json:"distance_km,omitempty" db:"distance_km"`
}

// Statistics - операционная сводка по инцидентам, дивизионам и командам
type Statistics struct {
	ActiveIncidents   int            `json:"active_incidents"`
	TotalIncidents    int            `json:"total_incidents"`
	DivisionsByStatus map[string]int `json:"divisions_by_status"`
	UnitsByStatus     map[string]int `json:"units_by_status"`
}
