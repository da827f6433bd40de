package domain

import "time"

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox - прямоугольник покрытия данных
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// MapView - начальная позиция карты и подложка для фронтенда
type MapView struct {
	Center          Point  `json:"center"`
	Zoom            int    `json:"zoom"`
	TileURL         string `json:"tile_url"`
	TileAttribution string `json:"tile_attribution"`
}

// MapStatistics - статистика текущего состояния карты
type MapStatistics struct {
	Bound         bool              `json:"bound"`
	LoadID        string            `json:"load_id,omitempty"`
	Selection     string            `json:"selection"`
	TotalFeatures int               `json:"total_features"`
	Matched       int               `json:"matched"`
	Unmatched     int               `json:"unmatched"`
	ByRiskLevel   map[RiskLevel]int `json:"by_risk_level"`
	TableRows     int               `json:"table_rows"`
	Years         []string          `json:"years"`
	Coverage      *BoundingBox      `json:"coverage,omitempty"`
	LoadedAt      time.Time         `json:"loaded_at"`
}
