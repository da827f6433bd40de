package render

import (
	"encoding/json"
	"fmt"

	"github.com/risk-map-service/internal/domain"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Layer - слой полигонов в памяти процесса: хранит фичи и применённый к каждой стиль.
// Не потокобезопасен, синхронизацию обеспечивает владелец слоя.
type Layer struct {
	features []*domain.BoundaryFeature
	styles   map[*domain.BoundaryFeature]domain.StyleProps
}

func NewLayer() *Layer {
	return &Layer{
		styles: make(map[*domain.BoundaryFeature]domain.StyleProps),
	}
}

// Load заменяет содержимое слоя и сразу стилизует каждую фичу
func (l *Layer) Load(features []*domain.BoundaryFeature) {
	l.features = features
	l.styles = make(map[*domain.BoundaryFeature]domain.StyleProps, len(features))
	for _, f := range features {
		l.styles[f] = l.Style(f)
	}
}

// Style - функция стиля слоя: цвет по текущему risk_level фичи
func (l *Layer) Style(f *domain.BoundaryFeature) domain.StyleProps {
	return domain.StyleFor(f.RiskLevel())
}

// SetStyle пересчитывает стиль одной фичи; фичи не из слоя игнорируются
func (l *Layer) SetStyle(f *domain.BoundaryFeature) {
	if _, ok := l.styles[f]; !ok {
		return
	}
	l.styles[f] = l.Style(f)
}

func (l *Layer) RestyleAll() {
	for _, f := range l.features {
		l.styles[f] = l.Style(f)
	}
}

func (l *Layer) Features() []*domain.BoundaryFeature {
	return l.features
}

// StyleOf возвращает стиль, который сейчас применён к фиче
func (l *Layer) StyleOf(f *domain.BoundaryFeature) (domain.StyleProps, bool) {
	style, ok := l.styles[f]
	return style, ok
}

type styledFeature struct {
	Type       string                 `json:"type"`
	ID         json.RawMessage        `json:"id,omitempty"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
	Style      domain.StyleProps      `json:"style"`
}

type styledCollection struct {
	Type     string          `json:"type"`
	Features []styledFeature `json:"features"`
}

// Export сериализует слой в GeoJSON FeatureCollection; у каждой фичи есть
// дополнительное поле "style" с применённым стилем
func (l *Layer) Export() ([]byte, error) {
	out := styledCollection{
		Type:     "FeatureCollection",
		Features: make([]styledFeature, 0, len(l.features)),
	}

	for i, f := range l.features {
		g, err := domain.EncodeGeometry(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("encode geometry of feature %d: %w", i, err)
		}
		out.Features = append(out.Features, styledFeature{
			Type:       "Feature",
			ID:         f.ID,
			Geometry:   g,
			Properties: f.Properties,
			Style:      l.styles[f],
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal styled collection: %w", err)
	}
	return data, nil
}
