package repository

import (
	"context"

	"github.com/risk-map-service/internal/domain"
)

// BoundarySource загружает коллекцию полигонов муниципалитетов
type BoundarySource interface {
	// LoadBoundaries возвращает все фичи в порядке источника
	LoadBoundaries(ctx context.Context) ([]*domain.BoundaryFeature, error)
}

// RiskTableSource загружает сырой CSV с уровнями риска по годам
type RiskTableSource interface {
	// LoadRiskTable возвращает текст CSV без разбора
	LoadRiskTable(ctx context.Context) (string, error)
}
