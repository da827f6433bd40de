package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/domain/repository"
	"github.com/risk-map-service/internal/observability"
	apperrors "github.com/risk-map-service/internal/pkg/errors"
	"github.com/risk-map-service/internal/pkg/validator"
	"github.com/risk-map-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ErrMapNotReady - данные ещё не загружены или загрузка не удалась
var ErrMapNotReady = apperrors.ErrMapNotReady

// RiskMapConfig - параметры RiskMapUseCase из конфигурации
type RiskMapConfig struct {
	View        domain.MapView
	SnapshotTTL time.Duration
}

// RiskMapUseCase - внешняя поверхность карты рисков для HTTP и воркера команд
type RiskMapUseCase struct {
	binding   *MapBinding
	cacheRepo repository.CacheRepository
	publisher repository.EventPublisher
	metrics   *observability.Metrics
	clock     clockwork.Clock
	cfg       RiskMapConfig
	logger    *zap.Logger
}

// NewRiskMapUseCase создает use case; cacheRepo и publisher могут быть nil, если Redis выключен
func NewRiskMapUseCase(
	binding *MapBinding,
	cacheRepo repository.CacheRepository,
	publisher repository.EventPublisher,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	cfg RiskMapConfig,
	logger *zap.Logger,
) *RiskMapUseCase {
	return &RiskMapUseCase{
		binding:   binding,
		cacheRepo: cacheRepo,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

// ResetToBaseMap возвращает все муниципалитеты к Unknown
func (uc *RiskMapUseCase) ResetToBaseMap(ctx context.Context) (*dto.MapUpdateResponse, error) {
	return uc.apply(ctx, nil, domain.MapActionReset, "")
}

// UpdateForYear раскрашивает муниципалитеты по колонке "<year>_risk"
func (uc *RiskMapUseCase) UpdateForYear(ctx context.Context, year string) (*dto.MapUpdateResponse, error) {
	return uc.apply(ctx, nil, domain.MapActionUpdate, year)
}

// ApplyCommand применяет команду из стрима
func (uc *RiskMapUseCase) ApplyCommand(ctx context.Context, cmd domain.MapCommand) (*dto.MapUpdateResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command %s: %w", cmd.ID, err)
	}
	if cmd.Action == domain.MapActionUpdate {
		if err := validator.ValidateYear(cmd.Year); err != nil {
			return nil, fmt.Errorf("invalid command %s: year %q: %w", cmd.ID, cmd.Year, err)
		}
	}
	id := cmd.ID
	return uc.apply(ctx, &id, cmd.Action, cmd.Year)
}

func (uc *RiskMapUseCase) apply(ctx context.Context, commandID *uuid.UUID, action domain.MapAction, year string) (*dto.MapUpdateResponse, error) {
	var result UpdateResult
	if action == domain.MapActionReset {
		result = uc.binding.ShowBaseMap()
	} else {
		result = uc.binding.UpdateMap(year)
	}

	event := domain.MapEvent{
		ID:         uuid.New(),
		CommandID:  commandID,
		Action:     action,
		Year:       year,
		Applied:    result.Applied,
		Matched:    result.Matched,
		Unmatched:  result.Unmatched,
		OccurredAt: uc.clock.Now().UTC(),
	}

	if !result.Applied {
		uc.metrics.MapOperations.WithLabelValues(string(action), observability.OutcomeNotReady).Inc()
		// команду из стрима воркер повторяет, итог публикует RejectCommand
		if commandID == nil {
			event.Error = ErrMapNotReady.Message
			uc.publish(ctx, event)
		}
		return nil, ErrMapNotReady
	}

	uc.metrics.MapOperations.WithLabelValues(string(action), observability.OutcomeApplied).Inc()
	uc.metrics.FeaturesMatched.Set(float64(result.Matched))
	uc.metrics.FeaturesUnmatched.Set(float64(result.Unmatched))
	if n := len(result.Duplicates); n > 0 {
		uc.metrics.DuplicateCities.Add(float64(n))
	}

	uc.logger.Info("Risk map restyled",
		zap.String("action", string(action)),
		zap.String("selection", result.Selection),
		zap.Int("matched", result.Matched),
		zap.Int("unmatched", result.Unmatched),
	)

	uc.publish(ctx, event)

	return &dto.MapUpdateResponse{
		Action:     action,
		Selection:  result.Selection,
		Matched:    result.Matched,
		Unmatched:  result.Unmatched,
		Duplicates: result.Duplicates,
	}, nil
}

// RejectCommand публикует итоговое событие о команде, которую не удалось применить
func (uc *RiskMapUseCase) RejectCommand(ctx context.Context, cmd domain.MapCommand, cause error) {
	event := domain.MapEvent{
		ID:         uuid.New(),
		CommandID:  &cmd.ID,
		Action:     cmd.Action,
		Year:       cmd.Year,
		OccurredAt: uc.clock.Now().UTC(),
		Error:      cause.Error(),
	}
	if appErr, ok := apperrors.As(cause); ok {
		event.Error = appErr.Message
	}
	uc.publish(ctx, event)
}

func (uc *RiskMapUseCase) publish(ctx context.Context, event domain.MapEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishMapEvent(ctx, event); err != nil {
		// Событие не критично, состояние карты уже изменено
		uc.logger.Warn("Failed to publish map event",
			zap.String("event_id", event.ID.String()),
			zap.Error(err),
		)
	}
}

// GetMap возвращает GeoJSON со стилями для текущей выборки, используя кеш когда возможно
func (uc *RiskMapUseCase) GetMap(ctx context.Context) (*dto.MapSnapshot, error) {
	state, err := uc.binding.State()
	if err != nil {
		return nil, uc.notReady(err)
	}

	// 1. Проверяем кеш
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetMapSnapshot(ctx, state.LoadID, state.Selection)
		if err != nil {
			uc.logger.Warn("Failed to get map snapshot from cache", zap.Error(err))
		}
		if err == nil && cached != nil {
			uc.metrics.SnapshotCache.WithLabelValues("hit").Inc()
			uc.logger.Debug("Map snapshot fetched from cache", zap.String("selection", state.Selection))
			return &dto.MapSnapshot{
				Data:      cached,
				LoadID:    state.LoadID,
				Selection: state.Selection,
				Cached:    true,
			}, nil
		}
		uc.metrics.SnapshotCache.WithLabelValues("miss").Inc()
	}

	// 2. Рендерим слой
	data, exported, err := uc.binding.Export()
	if err != nil {
		return nil, uc.notReady(err)
	}

	// 3. Кешируем под ту выборку, которой соответствует документ
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetMapSnapshot(ctx, exported.LoadID, exported.Selection, data, uc.cfg.SnapshotTTL); err != nil {
			uc.logger.Warn("Failed to cache map snapshot", zap.Error(err))
		}
	}

	return &dto.MapSnapshot{
		Data:      data,
		LoadID:    exported.LoadID,
		Selection: exported.Selection,
	}, nil
}

// GetLookup строит lookup для года (отладка сопоставления названий)
func (uc *RiskMapUseCase) GetLookup(ctx context.Context, year string) (*dto.LookupResponse, error) {
	report, err := uc.binding.Lookup(year)
	if err != nil {
		return nil, uc.notReady(err)
	}

	return &dto.LookupResponse{
		Year:       year,
		Column:     domain.RiskColumn(year),
		Entries:    report.Lookup,
		Duplicates: report.Duplicates,
		Total:      len(report.Lookup),
	}, nil
}

// GetYears возвращает годы, для которых в CSV есть колонка риска
func (uc *RiskMapUseCase) GetYears(ctx context.Context) (*dto.YearsResponse, error) {
	state, err := uc.binding.State()
	if err != nil {
		return nil, uc.notReady(err)
	}
	return &dto.YearsResponse{Years: state.Years}, nil
}

// GetStats возвращает статистику текущей раскраски
func (uc *RiskMapUseCase) GetStats(ctx context.Context) (*domain.MapStatistics, error) {
	stats, err := uc.binding.Statistics()
	if err != nil {
		return nil, uc.notReady(err)
	}
	return stats, nil
}

// GetView возвращает начальный вид карты, стиль по умолчанию и легенду.
// Доступен и до загрузки данных.
func (uc *RiskMapUseCase) GetView() *dto.MapViewResponse {
	levels := append(domain.KnownRiskLevels(), domain.RiskUnknown)
	legend := make([]dto.LegendEntry, 0, len(levels))
	for _, level := range levels {
		legend = append(legend, dto.LegendEntry{RiskLevel: level, Color: domain.ColorFor(level)})
	}

	return &dto.MapViewResponse{
		View:   uc.cfg.View,
		Style:  domain.StyleFor(domain.RiskUnknown),
		Legend: legend,
	}
}

// CheckReadiness возвращает ErrMapNotReady, пока карта не привязана
func (uc *RiskMapUseCase) CheckReadiness(ctx context.Context) (*dto.ReadinessResponse, error) {
	state, err := uc.binding.State()
	if err != nil {
		return &dto.ReadinessResponse{Ready: false}, uc.notReady(err)
	}
	return &dto.ReadinessResponse{Ready: true, LoadID: state.LoadID}, nil
}

func (uc *RiskMapUseCase) notReady(err error) error {
	if errors.Is(err, ErrNotBound) {
		return ErrMapNotReady
	}
	return fmt.Errorf("risk map: %w", err)
}
