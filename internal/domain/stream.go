package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с подписчиками на стороне диспетчерской)
const (
	StreamDivisionGenerate = "stream:division:generate"
	StreamDivisionDone     = "stream:division:done"
)

// DivisionGenerateEvent - задание на фоновую генерацию дивизионов.
// Публикуется при создании инцидента, когда сетка слишком велика
// для синхронной генерации в обработчике запроса.
type DivisionGenerateEvent struct {
	IncidentID   uuid.UUID `json:"incident_id"`
	SearchArea   Ring      `json:"search_area"`
	TargetAreaM2 float64   `json:"target_area_m2"`
}

// DivisionDoneEvent - результат фоновой генерации
type DivisionDoneEvent struct {
	IncidentID    uuid.UUID `json:"incident_id"`
	DivisionCount int       `json:"division_count"`
	TotalAreaM2   float64   `json:"total_area_m2,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
