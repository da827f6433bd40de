package usecase

import "github.com/risk-map-service/internal/domain"

// Renderer - слой карты, который отображает полигоны и хранит их стиль
type Renderer interface {
	// Load передаёт фичи слою и стилизует каждую
	Load(features []*domain.BoundaryFeature)
	// Style вычисляет стиль фичи по её текущему risk_level
	Style(feature *domain.BoundaryFeature) domain.StyleProps
	// SetStyle применяет стиль к одной фиче
	SetStyle(feature *domain.BoundaryFeature)
	// RestyleAll применяет стиль ко всем фичам слоя
	RestyleAll()
	Features() []*domain.BoundaryFeature
	// Export сериализует слой в GeoJSON со стилями
	Export() ([]byte, error)
}
