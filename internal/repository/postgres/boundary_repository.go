package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/risk-map-service/internal/domain"
	"github.com/risk-map-service/internal/domain/repository"
)

type boundaryRepository struct {
	db         *sqlx.DB
	logger     *zap.Logger
	adminLevel int
}

type boundaryRow struct {
	ID           int64  `db:"id"`
	OSMId        int64  `db:"osm_id"`
	Name         string `db:"name"`
	AdminLevel   int    `db:"admin_level"`
	GeometryJSON string `db:"geometry_json"`
}

// NewBoundaryRepository создает источник полигонов из таблицы admin_boundaries (PostGIS).
// adminLevel выбирает уровень муниципалитетов.
func NewBoundaryRepository(db *DB, adminLevel int) repository.BoundarySource {
	return &boundaryRepository{
		db:         db.DB,
		logger:     db.logger,
		adminLevel: adminLevel,
	}
}

// LoadBoundaries возвращает все муниципалитеты уровня adminLevel в виде фич.
// Английское название кладётся в properties.adm3_en, как в файловом GeoJSON.
func (r *boundaryRepository) LoadBoundaries(ctx context.Context) ([]*domain.BoundaryFeature, error) {
	query := `
		SELECT
			id, osm_id,
			COALESCE(NULLIF(name_en, ''), name) AS name,
			admin_level,
			ST_AsGeoJSON(geometry) AS geometry_json
		FROM admin_boundaries
		WHERE admin_level = $1
		ORDER BY id
	`

	var rows []boundaryRow
	if err := r.db.SelectContext(ctx, &rows, query, r.adminLevel); err != nil {
		r.logger.Error("Failed to load boundaries",
			zap.Int("admin_level", r.adminLevel),
			zap.Error(err))
		return nil, fmt.Errorf("select boundaries: %w", err)
	}

	features := make([]*domain.BoundaryFeature, 0, len(rows))
	for _, row := range rows {
		var g geojson.Geometry
		if err := json.Unmarshal([]byte(row.GeometryJSON), &g); err != nil {
			return nil, fmt.Errorf("unmarshal geometry of boundary %d: %w", row.ID, err)
		}
		decoded, err := g.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode geometry of boundary %d: %w", row.ID, err)
		}

		id := json.RawMessage(strconv.FormatInt(row.ID, 10))
		features = append(features, domain.NewBoundaryFeature(id, decoded, map[string]interface{}{
			domain.PropertyName: row.Name,
			"osm_id":            row.OSMId,
			"admin_level":       row.AdminLevel,
		}))
	}

	r.logger.Info("Boundaries loaded from PostgreSQL",
		zap.Int("admin_level", r.adminLevel),
		zap.Int("count", len(features)))

	return features, nil
}
