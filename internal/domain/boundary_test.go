package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

const testCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": 7,
      "geometry": {"type": "Polygon", "coordinates": [[[121.05,14.55],[121.10,14.55],[121.10,14.60],[121.05,14.60],[121.05,14.55]]]},
      "properties": {"adm3_en": "City of Pasig", "adm3_pcode": "PH137403000"}
    },
    {
      "type": "Feature",
      "geometry": {"type": "MultiPolygon", "coordinates": [[[[120.95,14.58],[121.00,14.58],[121.00,14.62],[120.95,14.58]]]]},
      "properties": {"adm3_en": "City of Manila"}
    },
    {
      "type": "Feature",
      "geometry": null,
      "properties": null
    }
  ]
}`

func TestDecodeFeatureCollection(t *testing.T) {
	features, err := DecodeFeatureCollection([]byte(testCollection))
	require.NoError(t, err)
	require.Len(t, features, 3)

	assert.Equal(t, "City of Pasig", features[0].Name())
	assert.Equal(t, "7", string(features[0].ID))
	assert.IsType(t, &geom.Polygon{}, features[0].Geometry)
	assert.Equal(t, "PH137403000", features[0].Properties["adm3_pcode"])

	assert.Equal(t, "City of Manila", features[1].Name())
	assert.IsType(t, &geom.MultiPolygon{}, features[1].Geometry)

	assert.Nil(t, features[2].Geometry)
	assert.NotNil(t, features[2].Properties)
	assert.Equal(t, "", features[2].Name())
}

func TestDecodeFeatureCollection_RejectsOtherRoots(t *testing.T) {
	_, err := DecodeFeatureCollection([]byte(`{"type":"Feature","properties":{}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFeatureCollection)

	_, err = DecodeFeatureCollection([]byte(`not json`))
	require.Error(t, err)
}

func TestBoundaryFeature_RiskLevel(t *testing.T) {
	f := NewBoundaryFeature(nil, nil, map[string]interface{}{"adm3_en": "Taguig"})

	assert.Equal(t, RiskUnknown, f.RiskLevel())

	f.SetRiskLevel(RiskVeryHigh)
	assert.Equal(t, RiskVeryHigh, f.RiskLevel())
	assert.Equal(t, "Very High", f.Properties[PropertyRiskLevel])
}

func TestBoundaryFeature_NameNotString(t *testing.T) {
	f := NewBoundaryFeature(nil, nil, map[string]interface{}{"adm3_en": 42.0})

	assert.Equal(t, "", f.Name())
}

func TestFeatureBounds(t *testing.T) {
	features, err := DecodeFeatureCollection([]byte(testCollection))
	require.NoError(t, err)

	bounds, ok := FeatureBounds(features)
	require.True(t, ok)
	assert.InDelta(t, 120.95, bounds.Min(0), 1e-9)
	assert.InDelta(t, 14.55, bounds.Min(1), 1e-9)
	assert.InDelta(t, 121.10, bounds.Max(0), 1e-9)
	assert.InDelta(t, 14.62, bounds.Max(1), 1e-9)

	_, ok = FeatureBounds([]*BoundaryFeature{NewBoundaryFeature(nil, nil, nil)})
	assert.False(t, ok)
}

func TestEncodeGeometry(t *testing.T) {
	g, err := EncodeGeometry(nil)
	require.NoError(t, err)
	assert.Nil(t, g)

	point := geom.NewPointFlat(geom.XY, []float64{121.0, 14.6})
	encoded, err := EncodeGeometry(point)
	require.NoError(t, err)
	assert.Equal(t, "Point", encoded.Type)
}
