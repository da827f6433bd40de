package utils

const (
	MinZoom = 0
	MaxZoom = 22
)

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateZoom проверяет уровень зума веб-карты
func ValidateZoom(zoom int) bool {
	return zoom >= MinZoom && zoom <= MaxZoom
}
