package usecase_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/render"
	"github.com/risk-map-service/internal/usecase"
)

var loadedAt = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

func newBinding() *usecase.MapBinding {
	return usecase.NewMapBinding(clockwork.NewFakeClockAt(loadedAt), zap.NewNop())
}

func boundary(name string, minLon, minLat float64) *domain.BoundaryFeature {
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{minLon, minLat}, {minLon + 0.05, minLat}, {minLon + 0.05, minLat + 0.05}, {minLon, minLat},
	}})
	return domain.NewBoundaryFeature(nil, poly, map[string]interface{}{domain.PropertyName: name})
}

func metroManila() []*domain.BoundaryFeature {
	return []*domain.BoundaryFeature{
		boundary("City of Pasig", 121.05, 14.55),
		boundary("City of Manila", 120.95, 14.57),
		boundary("Quezon City", 121.0, 14.65),
		boundary("Pateros", 121.06, 14.54),
	}
}

const metroManilaCSV = "city,2023_risk,2025_risk\n" +
	"Pasig,High,very high\n" +
	"Manila,Low,Moderate\n" +
	"Quezon City,,Low\n" +
	"manila ,Moderate,\n"

func TestMapBinding_EndToEndPasig(t *testing.T) {
	pasig := domain.NewBoundaryFeature(nil, nil, map[string]interface{}{domain.PropertyName: "City of Pasig"})
	table := domain.ParseRiskTable("city,2025_risk\nPasig,Low")

	layer := render.NewLayer()
	binding := newBinding()
	require.NoError(t, binding.Bind(layer, []*domain.BoundaryFeature{pasig}, table))

	assert.Equal(t, domain.RiskUnknown, pasig.RiskLevel())
	style, _ := layer.StyleOf(pasig)
	assert.Equal(t, domain.ColorLightGrey, style.FillColor)

	result := binding.UpdateMap("2025")
	assert.True(t, result.Applied)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, domain.RiskLow, pasig.RiskLevel())
	style, _ = layer.StyleOf(pasig)
	assert.Equal(t, domain.ColorGreen, style.FillColor)

	result = binding.ShowBaseMap()
	assert.True(t, result.Applied)
	assert.Equal(t, domain.RiskUnknown, pasig.RiskLevel())
	style, _ = layer.StyleOf(pasig)
	assert.Equal(t, domain.ColorLightGrey, style.FillColor)
}

func TestMapBinding_UnboundIsNoOp(t *testing.T) {
	binding := newBinding()
	assert.False(t, binding.IsBound())

	assert.NotPanics(t, func() {
		result := binding.UpdateMap("2025")
		assert.False(t, result.Applied)

		result = binding.ShowBaseMap()
		assert.False(t, result.Applied)
	})

	_, err := binding.State()
	assert.ErrorIs(t, err, usecase.ErrNotBound)

	_, _, err = binding.Export()
	assert.ErrorIs(t, err, usecase.ErrNotBound)

	_, err = binding.Lookup("2025")
	assert.ErrorIs(t, err, usecase.ErrNotBound)

	_, err = binding.Statistics()
	assert.ErrorIs(t, err, usecase.ErrNotBound)
}

func TestMapBinding_UpdateBeforeBindDoesNotMutateLaterFeatures(t *testing.T) {
	features := metroManila()
	binding := newBinding()

	binding.UpdateMap("2025")
	for _, f := range features {
		_, has := f.Properties[domain.PropertyRiskLevel]
		assert.False(t, has)
	}
}

func TestMapBinding_BindOnce(t *testing.T) {
	binding := newBinding()
	table := domain.ParseRiskTable(metroManilaCSV)

	require.NoError(t, binding.Bind(render.NewLayer(), metroManila(), table))
	assert.True(t, binding.IsBound())

	err := binding.Bind(render.NewLayer(), metroManila(), table)
	assert.ErrorIs(t, err, usecase.ErrAlreadyBound)
}

func TestMapBinding_BindOverwritesExistingRiskLevel(t *testing.T) {
	f := boundary("Makati", 121.01, 14.55)
	f.Properties[domain.PropertyRiskLevel] = "High"

	binding := newBinding()
	require.NoError(t, binding.Bind(render.NewLayer(), []*domain.BoundaryFeature{f}, domain.RiskTable{}))

	assert.Equal(t, domain.RiskUnknown, f.RiskLevel())
}

func TestMapBinding_UpdateMap(t *testing.T) {
	features := metroManila()
	pasig, manila, quezon, pateros := features[0], features[1], features[2], features[3]

	renderer := newRecordingRenderer()
	binding := newBinding()
	require.NoError(t, binding.Bind(renderer, features, domain.ParseRiskTable(metroManilaCSV)))

	t.Run("2023 last row wins for manila", func(t *testing.T) {
		result := binding.UpdateMap("2023")

		assert.Equal(t, "2023", result.Selection)
		assert.Equal(t, 2, result.Matched)
		assert.Equal(t, 2, result.Unmatched)
		assert.Equal(t, []string{"manila"}, result.Duplicates)

		assert.Equal(t, domain.RiskHigh, pasig.RiskLevel())
		assert.Equal(t, domain.RiskModerate, manila.RiskLevel())
		assert.Equal(t, domain.RiskUnknown, quezon.RiskLevel())
		assert.Equal(t, domain.RiskUnknown, pateros.RiskLevel())
		assert.Equal(t, domain.ColorRed, renderer.styles[pasig].FillColor)
		assert.Equal(t, domain.ColorYellow, renderer.styles[manila].FillColor)
	})

	t.Run("2025 canonicalises very high", func(t *testing.T) {
		result := binding.UpdateMap("2025")

		assert.Equal(t, 3, result.Matched)
		assert.Empty(t, result.Duplicates)
		assert.Equal(t, domain.RiskVeryHigh, pasig.RiskLevel())
		assert.Equal(t, domain.RiskModerate, manila.RiskLevel())
		assert.Equal(t, domain.RiskLow, quezon.RiskLevel())
		assert.Equal(t, domain.ColorDarkViolet, renderer.styles[pasig].FillColor)
		assert.Equal(t, domain.ColorGreen, renderer.styles[quezon].FillColor)
		assert.Equal(t, domain.ColorLightGrey, renderer.styles[pateros].FillColor)
	})

	t.Run("unknown year leaves everything Unknown", func(t *testing.T) {
		result := binding.UpdateMap("1999")

		assert.True(t, result.Applied)
		assert.Zero(t, result.Matched)
		for _, f := range features {
			assert.Equal(t, domain.RiskUnknown, f.RiskLevel())
			assert.Equal(t, domain.ColorLightGrey, renderer.styles[f].FillColor)
		}
	})

	assert.Equal(t, 3*len(features), renderer.setStyle)
}

func TestMapBinding_FeatureWithoutName(t *testing.T) {
	nameless := domain.NewBoundaryFeature(nil, nil, nil)

	binding := newBinding()
	require.NoError(t, binding.Bind(render.NewLayer(), []*domain.BoundaryFeature{nameless}, domain.ParseRiskTable(metroManilaCSV)))

	result := binding.UpdateMap("2025")
	assert.Equal(t, 1, result.Unmatched)
	assert.Equal(t, domain.RiskUnknown, nameless.RiskLevel())
}

func TestMapBinding_ShowBaseMapRestylesAll(t *testing.T) {
	features := metroManila()
	renderer := newRecordingRenderer()
	binding := newBinding()
	require.NoError(t, binding.Bind(renderer, features, domain.ParseRiskTable(metroManilaCSV)))

	binding.UpdateMap("2025")
	before := renderer.restyleAll

	result := binding.ShowBaseMap()
	assert.Equal(t, usecase.SelectionBase, result.Selection)
	assert.Equal(t, len(features), result.Unmatched)
	assert.Equal(t, before+1, renderer.restyleAll)

	for _, f := range features {
		assert.Equal(t, domain.RiskUnknown, f.RiskLevel())
		assert.Equal(t, domain.ColorLightGrey, renderer.styles[f].FillColor)
	}
}

func TestMapBinding_StateAndStatistics(t *testing.T) {
	binding := newBinding()
	require.NoError(t, binding.Bind(render.NewLayer(), metroManila(), domain.ParseRiskTable(metroManilaCSV)))

	state, err := binding.State()
	require.NoError(t, err)
	assert.NotEmpty(t, state.LoadID)
	assert.Equal(t, loadedAt, state.LoadedAt)
	assert.Equal(t, usecase.SelectionBase, state.Selection)
	assert.Equal(t, 4, state.Features)
	assert.Equal(t, 4, state.TableRows)
	assert.Equal(t, []string{"2023", "2025"}, state.Years)

	binding.UpdateMap("2025")

	stats, err := binding.Statistics()
	require.NoError(t, err)
	assert.True(t, stats.Bound)
	assert.Equal(t, "2025", stats.Selection)
	assert.Equal(t, 3, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t, 1, stats.ByRiskLevel[domain.RiskVeryHigh])
	assert.Equal(t, 1, stats.ByRiskLevel[domain.RiskModerate])
	assert.Equal(t, 1, stats.ByRiskLevel[domain.RiskLow])
	assert.Equal(t, 1, stats.ByRiskLevel[domain.RiskUnknown])

	require.NotNil(t, stats.Coverage)
	assert.InDelta(t, 120.95, stats.Coverage.MinLon, 1e-9)
	assert.InDelta(t, 14.54, stats.Coverage.MinLat, 1e-9)
	assert.InDelta(t, 121.11, stats.Coverage.MaxLon, 1e-9)
	assert.InDelta(t, 14.70, stats.Coverage.MaxLat, 1e-9)
}

func TestMapBinding_LookupDoesNotTouchLayer(t *testing.T) {
	features := metroManila()
	binding := newBinding()
	require.NoError(t, binding.Bind(render.NewLayer(), features, domain.ParseRiskTable(metroManilaCSV)))

	first, err := binding.Lookup("2025")
	require.NoError(t, err)
	second, err := binding.Lookup("2025")
	require.NoError(t, err)

	assert.Equal(t, first.Lookup, second.Lookup)
	assert.Equal(t, domain.RiskVeryHigh, first.Lookup["pasig"])
	for _, f := range features {
		assert.Equal(t, domain.RiskUnknown, f.RiskLevel())
	}
}

func TestMapBinding_ConcurrentOperations(t *testing.T) {
	binding := newBinding()
	require.NoError(t, binding.Bind(render.NewLayer(), metroManila(), domain.ParseRiskTable(metroManilaCSV)))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			binding.UpdateMap("2025")
		}()
		go func() {
			defer wg.Done()
			binding.ShowBaseMap()
		}()
		go func() {
			defer wg.Done()
			_, _, _ = binding.Export()
		}()
	}
	wg.Wait()

	stats, err := binding.Statistics()
	require.NoError(t, err)
	total := 0
	for _, n := range stats.ByRiskLevel {
		total += n
	}
	assert.Equal(t, 4, total)
}
