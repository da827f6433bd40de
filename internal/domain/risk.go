package domain

// RiskLevel - категория риска наводнения/бедствия.
// Любое другое строковое значение допустимо и трактуется как неизвестное.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
	RiskUnknown  RiskLevel = "Unknown"
)

// Color - имя цвета в формате CSS
type Color string

const (
	ColorGreen      Color = "green"
	ColorYellow     Color = "yellow"
	ColorRed        Color = "red"
	ColorDarkViolet Color = "darkviolet"
	ColorLightGrey  Color = "lightgrey"
	ColorBlack      Color = "black"
)

// DefaultColor - цвет для Unknown и любых нераспознанных значений
const DefaultColor = ColorLightGrey

const (
	strokeWeight = 1
	fillOpacity  = 0.6
)

// StyleProps - контракт стиля полигона для картографической библиотеки
type StyleProps struct {
	FillColor   Color   `json:"fillColor"`
	Weight      int     `json:"weight"`
	Color       Color   `json:"color"`
	FillOpacity float64 `json:"fillOpacity"`
}

// ColorFor возвращает цвет заливки для уровня риска. Функция тотальна.
func ColorFor(level RiskLevel) Color {
	switch level {
	case RiskLow:
		return ColorGreen
	case RiskModerate:
		return ColorYellow
	case RiskHigh:
		return ColorRed
	case RiskVeryHigh:
		return ColorDarkViolet
	default:
		return DefaultColor
	}
}

// StyleFor возвращает полный стиль полигона: заливка по уровню риска,
// чёрная обводка 1px и прозрачность 0.6
func StyleFor(level RiskLevel) StyleProps {
	return StyleProps{
		FillColor:   ColorFor(level),
		Weight:      strokeWeight,
		Color:       ColorBlack,
		FillOpacity: fillOpacity,
	}
}

// KnownRiskLevels возвращает уровни с собственным цветом в порядке возрастания риска
func KnownRiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskVeryHigh}
}
