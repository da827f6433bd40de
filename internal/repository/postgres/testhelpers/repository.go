package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/risk-map-service/internal/domain/repository"
	"github.com/risk-map-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewBoundarySourceForTest creates a boundary source over the test database
func NewBoundarySourceForTest(db *sqlx.DB, logger *zap.Logger, adminLevel int) repository.BoundarySource {
	return postgres.NewBoundaryRepository(postgres.NewDBForTest(db, logger), adminLevel)
}
