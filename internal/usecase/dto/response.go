package dto

import (
	"time"

	"github.com/risk-map-service/internal/domain"
)

// MapUpdateResponse - результат сброса или выбора года
type MapUpdateResponse struct {
	Action     domain.MapAction `json:"action"`
	Selection  string           `json:"selection"`
	Matched    int              `json:"matched"`
	Unmatched  int              `json:"unmatched"`
	Duplicates []string         `json:"duplicates,omitempty"`
}

// MapSnapshot - отрендеренный GeoJSON карты для текущей выборки
type MapSnapshot struct {
	Data      []byte
	LoadID    string
	Selection string
	Cached    bool
}

// LookupResponse - lookup название -> уровень риска для года
type LookupResponse struct {
	Year       string                      `json:"year"`
	Column     string                      `json:"column"`
	Entries    map[string]domain.RiskLevel `json:"entries"`
	Duplicates []string                    `json:"duplicates,omitempty"`
	Total      int                         `json:"total"`
}

// YearsResponse - годы, для которых в таблице есть колонка риска
type YearsResponse struct {
	Years []string `json:"years"`
}

// LegendEntry - цвет для уровня риска
type LegendEntry struct {
	RiskLevel domain.RiskLevel `json:"risk_level"`
	Color     domain.Color     `json:"color"`
}

// MapViewResponse - начальный вид карты, подложка и легенда
type MapViewResponse struct {
	View   domain.MapView    `json:"view"`
	Style  domain.StyleProps `json:"default_style"`
	Legend []LegendEntry     `json:"legend"`
}

// HealthResponse - ответ health-check
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadinessResponse - ответ readiness-check
type ReadinessResponse struct {
	Ready  bool   `json:"ready"`
	LoadID string `json:"load_id,omitempty"`
}
