package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/domain/repository"
	"github.com/risk-map-service/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MapLoader загружает полигоны и CSV параллельно и привязывает их к карте.
// Ошибка загрузки логируется один раз, повторных попыток нет.
type MapLoader struct {
	boundaries  repository.BoundarySource
	riskTable   repository.RiskTableSource
	binding     *MapBinding
	newRenderer func() Renderer
	metrics     *observability.Metrics
	logger      *zap.Logger
}

func NewMapLoader(
	boundaries repository.BoundarySource,
	riskTable repository.RiskTableSource,
	binding *MapBinding,
	newRenderer func() Renderer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *MapLoader {
	return &MapLoader{
		boundaries:  boundaries,
		riskTable:   riskTable,
		binding:     binding,
		newRenderer: newRenderer,
		metrics:     metrics,
		logger:      logger,
	}
}

// Load выполняет загрузку; при ошибке карта остаётся непривязанной навсегда
func (l *MapLoader) Load(ctx context.Context) error {
	start := time.Now()

	var (
		features []*domain.BoundaryFeature
		csvText  string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := l.boundaries.LoadBoundaries(gctx)
		if err != nil {
			return fmt.Errorf("load boundaries: %w", err)
		}
		features = loaded
		return nil
	})
	g.Go(func() error {
		text, err := l.riskTable.LoadRiskTable(gctx)
		if err != nil {
			return fmt.Errorf("load risk table: %w", err)
		}
		csvText = text
		return nil
	})

	if err := g.Wait(); err != nil {
		l.metrics.LoadFailures.Inc()
		l.logger.Error("Failed to load risk map data", zap.Error(err))
		return err
	}

	table := domain.ParseRiskTable(csvText)
	if err := l.binding.Bind(l.newRenderer(), features, table); err != nil {
		l.metrics.LoadFailures.Inc()
		l.logger.Error("Failed to bind risk map data", zap.Error(err))
		return err
	}

	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.metrics.MapBound.Set(1)
	l.metrics.FeaturesMatched.Set(0)
	l.metrics.FeaturesUnmatched.Set(float64(len(features)))

	return nil
}
