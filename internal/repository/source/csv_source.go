package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/risk-map-service/internal/domain/repository"
)

type csvSource struct {
	location string
	fetcher  *fetcher
	logger   *zap.Logger
}

// NewCSVSource создает источник CSV с уровнями риска (путь или URL)
func NewCSVSource(location string, timeout time.Duration, logger *zap.Logger) repository.RiskTableSource {
	return &csvSource{
		location: location,
		fetcher:  newFetcher(timeout, logger),
		logger:   logger,
	}
}

func (s *csvSource) LoadRiskTable(ctx context.Context) (string, error) {
	data, err := s.fetcher.fetch(ctx, s.location)
	if err != nil {
		return "", err
	}

	s.logger.Info("Risk CSV loaded",
		zap.String("source", s.location),
		zap.Int("size", len(data)))

	return string(data), nil
}
