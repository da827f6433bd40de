package source

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/domain/repository"
)

type geoJSONSource struct {
	location string
	fetcher  *fetcher
	logger   *zap.Logger
}

// NewGeoJSONSource создает источник полигонов из GeoJSON-файла (путь или URL)
func NewGeoJSONSource(location string, timeout time.Duration, logger *zap.Logger) repository.BoundarySource {
	return &geoJSONSource{
		location: location,
		fetcher:  newFetcher(timeout, logger),
		logger:   logger,
	}
}

func (s *geoJSONSource) LoadBoundaries(ctx context.Context) ([]*domain.BoundaryFeature, error) {
	data, err := s.fetcher.fetch(ctx, s.location)
	if err != nil {
		return nil, err
	}

	features, err := domain.DecodeFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.location, err)
	}

	s.logger.Info("GeoJSON loaded",
		zap.String("source", s.location),
		zap.Int("features", len(features)))

	return features, nil
}
