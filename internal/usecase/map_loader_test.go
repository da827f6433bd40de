package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/risk-map-service/internal/observability"
	"github.com/risk-map-service/internal/render"
	"github.com/risk-map-service/internal/usecase"
)

func newLayer() usecase.Renderer {
	return render.NewLayer()
}

func TestMapLoader_Load(t *testing.T) {
	ctx := context.Background()
	features := metroManila()

	boundaries := &MockBoundarySource{}
	boundaries.On("LoadBoundaries", mock.Anything).Return(features, nil)
	riskTable := &MockRiskTableSource{}
	riskTable.On("LoadRiskTable", mock.Anything).Return(metroManilaCSV, nil)

	binding := newBinding()
	loader := usecase.NewMapLoader(boundaries, riskTable, binding, newLayer, observability.NewMetricsForTesting(), zap.NewNop())

	require.NoError(t, loader.Load(ctx))
	assert.True(t, binding.IsBound())

	state, err := binding.State()
	require.NoError(t, err)
	assert.Equal(t, len(features), state.Features)
	assert.Equal(t, []string{"2023", "2025"}, state.Years)

	boundaries.AssertExpectations(t)
	riskTable.AssertExpectations(t)
}

func TestMapLoader_FailureLeavesUnbound(t *testing.T) {
	tests := []struct {
		name          string
		boundaryErr   error
		riskTableErr  error
		wantErrSubstr string
	}{
		{
			name:          "boundary fetch fails",
			boundaryErr:   errors.New("404 Not Found"),
			wantErrSubstr: "load boundaries",
		},
		{
			name:          "risk table fetch fails",
			riskTableErr:  errors.New("connection refused"),
			wantErrSubstr: "load risk table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boundaries := &MockBoundarySource{}
			if tt.boundaryErr != nil {
				boundaries.On("LoadBoundaries", mock.Anything).Return(nil, tt.boundaryErr)
			} else {
				boundaries.On("LoadBoundaries", mock.Anything).Return(metroManila(), nil)
			}
			riskTable := &MockRiskTableSource{}
			riskTable.On("LoadRiskTable", mock.Anything).Return(metroManilaCSV, tt.riskTableErr)

			binding := newBinding()
			loader := usecase.NewMapLoader(boundaries, riskTable, binding, newLayer, observability.NewMetricsForTesting(), zap.NewNop())

			err := loader.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrSubstr)
			assert.False(t, binding.IsBound())

			result := binding.UpdateMap("2025")
			assert.False(t, result.Applied)
		})
	}
}

func TestMapLoader_SecondLoadRejected(t *testing.T) {
	boundaries := &MockBoundarySource{}
	boundaries.On("LoadBoundaries", mock.Anything).Return(metroManila(), nil)
	riskTable := &MockRiskTableSource{}
	riskTable.On("LoadRiskTable", mock.Anything).Return(metroManilaCSV, nil)

	binding := newBinding()
	loader := usecase.NewMapLoader(boundaries, riskTable, binding, newLayer, observability.NewMetricsForTesting(), zap.NewNop())

	require.NoError(t, loader.Load(context.Background()))
	first, _ := binding.State()

	err := loader.Load(context.Background())
	assert.ErrorIs(t, err, usecase.ErrAlreadyBound)

	second, _ := binding.State()
	assert.Equal(t, first.LoadID, second.LoadID)
}
