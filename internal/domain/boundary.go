package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const (
	// PropertyName - поле properties с названием муниципалитета
	PropertyName = "adm3_en"
	// PropertyRiskLevel - поле properties, которое заполняет сервис
	PropertyRiskLevel = "risk_level"

	featureCollectionType = "FeatureCollection"
	featureType           = "Feature"
)

// ErrNotFeatureCollection возвращается, если корневой объект GeoJSON не FeatureCollection
var ErrNotFeatureCollection = errors.New("geojson root is not a FeatureCollection")

// BoundaryFeature - полигон одного муниципалитета.
// Набор фич создаётся один раз при загрузке; меняется только risk_level.
type BoundaryFeature struct {
	ID         json.RawMessage
	Geometry   geom.T
	Properties map[string]interface{}
}

// NewBoundaryFeature создает фичу; nil properties заменяются пустой map
func NewBoundaryFeature(id json.RawMessage, g geom.T, properties map[string]interface{}) *BoundaryFeature {
	if properties == nil {
		properties = make(map[string]interface{})
	}
	return &BoundaryFeature{
		ID:         id,
		Geometry:   g,
		Properties: properties,
	}
}

// Name возвращает properties.adm3_en или пустую строку, если поля нет или оно не строка
func (f *BoundaryFeature) Name() string {
	name, _ := f.Properties[PropertyName].(string)
	return name
}

// RiskLevel возвращает текущий properties.risk_level
func (f *BoundaryFeature) RiskLevel() RiskLevel {
	switch v := f.Properties[PropertyRiskLevel].(type) {
	case RiskLevel:
		return v
	case string:
		return RiskLevel(v)
	default:
		return RiskUnknown
	}
}

// SetRiskLevel записывает properties.risk_level
func (f *BoundaryFeature) SetRiskLevel(level RiskLevel) {
	f.Properties[PropertyRiskLevel] = string(level)
}

type featureCollectionJSON struct {
	Type     string        `json:"type"`
	Features []featureJSON `json:"features"`
}

type featureJSON struct {
	Type       string                 `json:"type"`
	ID         json.RawMessage        `json:"id,omitempty"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// DecodeFeatureCollection разбирает GeoJSON FeatureCollection в список фич.
// Геометрия декодируется через go-geom; фича с "geometry": null допустима.
func DecodeFeatureCollection(data []byte) ([]*BoundaryFeature, error) {
	var fc featureCollectionJSON
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("unmarshal feature collection: %w", err)
	}
	if fc.Type != featureCollectionType {
		return nil, fmt.Errorf("%w: got %q", ErrNotFeatureCollection, fc.Type)
	}

	features := make([]*BoundaryFeature, 0, len(fc.Features))
	for i, raw := range fc.Features {
		var g geom.T
		if raw.Geometry != nil {
			decoded, err := raw.Geometry.Decode()
			if err != nil {
				return nil, fmt.Errorf("decode geometry of feature %d: %w", i, err)
			}
			g = decoded
		}
		features = append(features, NewBoundaryFeature(raw.ID, g, raw.Properties))
	}

	return features, nil
}

// EncodeGeometry кодирует геометрию фичи обратно в GeoJSON (nil для пустой геометрии)
func EncodeGeometry(g geom.T) (*geojson.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	return geojson.Encode(g)
}

// FeatureBounds вычисляет общий bbox всех фич. ok=false, если ни у одной фичи нет геометрии.
func FeatureBounds(features []*BoundaryFeature) (bounds *geom.Bounds, ok bool) {
	bounds = geom.NewBounds(geom.XY)
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		bounds.Extend(f.Geometry)
		ok = true
	}
	return bounds, ok
}
