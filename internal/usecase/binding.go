package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/risk-map-service/internal/domain"
	"go.uber.org/zap"
)

// SelectionBase - выборка базовой карты, где все фичи Unknown
const SelectionBase = "base"

var (
	// ErrAlreadyBound возвращается при повторном Bind
	ErrAlreadyBound = errors.New("map binding is already bound")
	// ErrNotBound возвращается операциями чтения до загрузки данных
	ErrNotBound = errors.New("map binding is not bound")
)

type bindingState interface {
	isBindingState()
}

type unboundState struct{}

func (unboundState) isBindingState() {}

type boundState struct {
	layer     Renderer
	table     domain.RiskTable
	loadID    string
	loadedAt  time.Time
	selection string
	matched   int
}

func (*boundState) isBindingState() {}

// UpdateResult - итог ShowBaseMap или UpdateMap
type UpdateResult struct {
	Selection  string
	Applied    bool
	Matched    int
	Unmatched  int
	Duplicates []string
}

// MapState - снимок метаданных привязанной карты
type MapState struct {
	LoadID    string
	LoadedAt  time.Time
	Selection string
	Features  int
	Matched   int
	TableRows int
	Years     []string
}

// MapBinding связывает полигоны с таблицей рисков и перекрашивает слой
// при сбросе или выборе года. Состояние меняется только Unbound -> Bound.
// Все операции выполняются под одним мьютексом целиком.
type MapBinding struct {
	mu     sync.Mutex
	state  bindingState
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewMapBinding(clock clockwork.Clock, logger *zap.Logger) *MapBinding {
	return &MapBinding{
		state:  unboundState{},
		clock:  clock,
		logger: logger,
	}
}

// Bind помечает все фичи как Unknown, передаёт их слою и стилизует.
// Вызывается один раз после успешной загрузки обоих источников.
func (b *MapBinding) Bind(layer Renderer, features []*domain.BoundaryFeature, table domain.RiskTable) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.state.(*boundState); ok {
		return ErrAlreadyBound
	}

	for _, f := range features {
		f.SetRiskLevel(domain.RiskUnknown)
	}
	layer.Load(features)
	layer.RestyleAll()

	state := &boundState{
		layer:     layer,
		table:     table,
		loadID:    uuid.NewString(),
		loadedAt:  b.clock.Now().UTC(),
		selection: SelectionBase,
	}
	b.state = state

	b.logger.Info("Risk map bound",
		zap.String("load_id", state.loadID),
		zap.Int("features", len(features)),
		zap.Int("table_rows", len(table.Rows)),
		zap.Strings("years", table.Years()),
	)
	return nil
}

func (b *MapBinding) IsBound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.state.(*boundState)
	return ok
}

// ShowBaseMap возвращает все фичи к Unknown. До привязки ничего не делает.
func (b *MapBinding) ShowBaseMap() UpdateResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.state.(*boundState)
	if !ok {
		return UpdateResult{Selection: SelectionBase}
	}

	features := state.layer.Features()
	for _, f := range features {
		f.SetRiskLevel(domain.RiskUnknown)
	}
	state.layer.RestyleAll()
	state.selection = SelectionBase
	state.matched = 0

	return UpdateResult{
		Selection: SelectionBase,
		Applied:   true,
		Unmatched: len(features),
	}
}

// UpdateMap раскрашивает фичи по колонке "<year>_risk".
// До привязки пишет предупреждение и ничего не меняет.
func (b *MapBinding) UpdateMap(year string) UpdateResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.state.(*boundState)
	if !ok {
		b.logger.Warn("Map update requested before data was loaded", zap.String("year", year))
		return UpdateResult{Selection: year}
	}

	report := domain.BuildRiskLookupReport(state.table, year)
	if len(report.Duplicates) > 0 {
		b.logger.Warn("Risk table has duplicate cities, last row wins",
			zap.String("year", year),
			zap.Strings("cities", report.Duplicates),
		)
	}

	features := state.layer.Features()
	matched := 0
	for _, f := range features {
		name := domain.NormalizeName(f.Name())
		level, found := report.Lookup[name]
		if !found {
			level = domain.RiskUnknown
		} else {
			matched++
		}
		f.SetRiskLevel(level)
		state.layer.SetStyle(f)

		b.logger.Debug("Feature joined",
			zap.String("name", name),
			zap.String("risk_level", string(level)),
			zap.Bool("matched", found),
		)
	}

	state.selection = year
	state.matched = matched

	return UpdateResult{
		Selection:  year,
		Applied:    true,
		Matched:    matched,
		Unmatched:  len(features) - matched,
		Duplicates: report.Duplicates,
	}
}

// State возвращает метаданные текущего состояния карты
func (b *MapBinding) State() (MapState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.state.(*boundState)
	if !ok {
		return MapState{}, ErrNotBound
	}
	return state.snapshot(), nil
}

// Export сериализует слой вместе с состоянием, которому соответствует документ
func (b *MapBinding) Export() ([]byte, MapState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.state.(*boundState)
	if !ok {
		return nil, MapState{}, ErrNotBound
	}

	data, err := state.layer.Export()
	if err != nil {
		return nil, MapState{}, fmt.Errorf("export layer: %w", err)
	}
	return data, state.snapshot(), nil
}

// Lookup строит lookup для года по загруженной таблице, не трогая слой
func (b *MapBinding) Lookup(year string) (domain.RiskLookupReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.state.(*boundState)
	if !ok {
		return domain.RiskLookupReport{}, ErrNotBound
	}
	return domain.BuildRiskLookupReport(state.table, year), nil
}

// Statistics считает распределение уровней риска и покрытие текущего слоя
func (b *MapBinding) Statistics() (*domain.MapStatistics, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, ok := b.state.(*boundState)
	if !ok {
		return nil, ErrNotBound
	}

	features := state.layer.Features()
	byLevel := make(map[domain.RiskLevel]int)
	for _, f := range features {
		byLevel[f.RiskLevel()]++
	}

	snap := state.snapshot()
	stats := &domain.MapStatistics{
		Bound:         true,
		LoadID:        snap.LoadID,
		Selection:     snap.Selection,
		TotalFeatures: snap.Features,
		Matched:       snap.Matched,
		Unmatched:     snap.Features - snap.Matched,
		ByRiskLevel:   byLevel,
		TableRows:     snap.TableRows,
		Years:         snap.Years,
		LoadedAt:      snap.LoadedAt,
	}

	if bounds, ok := domain.FeatureBounds(features); ok {
		stats.Coverage = &domain.BoundingBox{
			MinLon: bounds.Min(0),
			MinLat: bounds.Min(1),
			MaxLon: bounds.Max(0),
			MaxLat: bounds.Max(1),
		}
	}

	return stats, nil
}

func (s *boundState) snapshot() MapState {
	return MapState{
		LoadID:    s.loadID,
		LoadedAt:  s.loadedAt,
		Selection: s.selection,
		Features:  len(s.layer.Features()),
		Matched:   s.matched,
		TableRows: len(s.table.Rows),
		Years:     s.table.Years(),
	}
}
