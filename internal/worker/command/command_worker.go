package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/domain/repository"
	"github.com/risk-map-service/internal/observability"
	"github.com/risk-map-service/internal/usecase"
	"github.com/risk-map-service/internal/usecase/dto"
	"github.com/risk-map-service/internal/worker"
	"go.uber.org/zap"
)

const workerName = "map-command"

// MapCommandApplier применяет команду к карте
type MapCommandApplier interface {
	ApplyCommand(ctx context.Context, cmd domain.MapCommand) (*dto.MapUpdateResponse, error)
	// RejectCommand сообщает итоговую ошибку команды, один раз на доставку
	RejectCommand(ctx context.Context, cmd domain.MapCommand, cause error)
}

// Config - параметры CommandWorker
type Config struct {
	Stream        string
	ConsumerGroup string
	ConsumerName  string
	MaxRetries    int
	RetryDelay    time.Duration
}

// CommandWorker читает команды reset/update из Redis Stream и применяет их к карте.
// Пока данные не загружены, команда повторяется до MaxRetries раз; после этого
// сообщение остаётся pending и перечитывается при следующем старте воркера.
type CommandWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	applier    MapCommandApplier
	metrics    *observability.Metrics
	cfg        Config
}

func NewCommandWorker(
	streamRepo repository.StreamRepository,
	applier MapCommandApplier,
	metrics *observability.Metrics,
	cfg Config,
	logger *zap.Logger,
) *CommandWorker {
	if cfg.Stream == "" {
		cfg.Stream = domain.StreamMapCommands
	}
	return &CommandWorker{
		BaseWorker: worker.NewBaseWorker(workerName, cfg.ConsumerGroup, logger),
		streamRepo: streamRepo,
		applier:    applier,
		metrics:    metrics,
		cfg:        cfg,
	}
}

// Start блокируется до Stop или отмены контекста
func (w *CommandWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting command worker",
		zap.String("stream", w.cfg.Stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.cfg.ConsumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.cfg.Stream, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	runCtx, cancel := w.RunContext(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(runCtx, w.cfg.Stream, w.ConsumerGroup(), w.cfg.ConsumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for msg := range messages {
		w.handle(runCtx, msg)
	}

	logger.Info("Command worker stopped")
	return nil
}

func (w *CommandWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var cmd domain.MapCommand
	if err := json.Unmarshal([]byte(msg.Data), &cmd); err != nil {
		logger.Warn("Failed to parse command, skipping", zap.Error(err))
		w.metrics.CommandsProcessed.WithLabelValues("unknown", observability.OutcomeFailed).Inc()
		// ACK битое сообщение чтобы не застревало
		w.ack(ctx, msg.ID)
		return
	}

	for attempt := 0; ; attempt++ {
		resp, err := w.applier.ApplyCommand(ctx, cmd)
		if err == nil {
			w.metrics.CommandsProcessed.WithLabelValues(string(cmd.Action), observability.OutcomeApplied).Inc()
			logger.Debug("Command applied",
				zap.String("command_id", cmd.ID.String()),
				zap.String("selection", resp.Selection))
			w.ack(ctx, msg.ID)
			return
		}

		retryable := errors.Is(err, usecase.ErrMapNotReady)
		if !retryable || attempt >= w.cfg.MaxRetries {
			w.metrics.CommandsProcessed.WithLabelValues(string(cmd.Action), observability.OutcomeFailed).Inc()
			logger.Error("Command failed",
				zap.String("command_id", cmd.ID.String()),
				zap.Int("attempts", attempt+1),
				zap.Error(err))
			w.applier.RejectCommand(ctx, cmd, err)
			if !retryable {
				w.ack(ctx, msg.ID)
			}
			return
		}

		if !sleep(ctx, w.cfg.RetryDelay) {
			return
		}
	}
}

func (w *CommandWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, w.cfg.Stream, w.ConsumerGroup(), id); err != nil {
		// Не критично - сообщение будет переобработано
		w.Logger().Warn("Failed to ack command", zap.String("message_id", id), zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
