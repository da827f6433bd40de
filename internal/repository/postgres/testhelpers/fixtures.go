package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS postgis;
CREATE TABLE IF NOT EXISTS admin_boundaries (
	id          BIGSERIAL PRIMARY KEY,
	osm_id      BIGINT NOT NULL,
	name        TEXT NOT NULL,
	name_en     TEXT,
	admin_level INT NOT NULL,
	geometry    geometry(MultiPolygon, 4326) NOT NULL
);
`

// Boundary is a fixture row for admin_boundaries
type Boundary struct {
	OSMId        int64
	Name         string
	NameEn       string
	AdminLevel   int
	GeometryJSON string
}

// ApplySchema creates the admin_boundaries table used by the boundary source
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// InsertBoundaries loads fixture rows
func InsertBoundaries(ctx context.Context, db *sqlx.DB, boundaries []Boundary) error {
	for _, b := range boundaries {
		_, err := db.ExecContext(ctx, `
			INSERT INTO admin_boundaries (osm_id, name, name_en, admin_level, geometry)
			VALUES ($1, $2, NULLIF($3, ''), $4, ST_Multi(ST_SetSRID(ST_GeomFromGeoJSON($5), 4326)))
		`, b.OSMId, b.Name, b.NameEn, b.AdminLevel, b.GeometryJSON)
		if err != nil {
			return fmt.Errorf("insert boundary %s: %w", b.Name, err)
		}
	}
	return nil
}
