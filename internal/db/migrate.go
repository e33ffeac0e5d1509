package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every start.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillPriceRange(db); err != nil {
		return fmt.Errorf("backfilling price ranges: %w", err)
	}
	return nil
}

// migrateBackfillPriceRange derives price_range for rows written before the
// column existed. Thresholds match domain.PriceRangeForCost.
func migrateBackfillPriceRange(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), `UPDATE spots SET price_range = CASE
			WHEN estimated_cost = 0     THEN 'free'
			WHEN estimated_cost < 10000 THEN 'low'
			WHEN estimated_cost < 30000 THEN 'medium'
			WHEN estimated_cost < 50000 THEN 'high'
			ELSE 'premium'
		END
		WHERE price_range = ''`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS spots (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		category       TEXT NOT NULL
		               CHECK(category IN ('cultural_site','cafe','restaurant','museum','park',
		                                  'shopping','viewpoint','theme_park','beach','gallery')),
		area           TEXT NOT NULL DEFAULT '',
		latitude       REAL NOT NULL CHECK(latitude BETWEEN -90 AND 90),
		longitude      REAL NOT NULL CHECK(longitude BETWEEN -180 AND 180),
		address        TEXT NOT NULL DEFAULT '',
		rating         REAL NOT NULL DEFAULT 0 CHECK(rating BETWEEN 0 AND 5),
		review_count   INTEGER NOT NULL DEFAULT 0,
		duration_min   INTEGER NOT NULL CHECK(duration_min > 0),
		estimated_cost INTEGER NOT NULL DEFAULT 0 CHECK(estimated_cost >= 0),
		description    TEXT NOT NULL DEFAULT '',
		accessibility  TEXT NOT NULL DEFAULT '',
		parking        INTEGER NOT NULL DEFAULT 0,
		contact        TEXT NOT NULL DEFAULT '',
		website        TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`ALTER TABLE spots ADD COLUMN price_range TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_spots_category ON spots(category)`,
	`CREATE INDEX IF NOT EXISTS idx_spots_area ON spots(area)`,

	`CREATE TABLE IF NOT EXISTS spot_hours (
		spot_id TEXT NOT NULL REFERENCES spots(id) ON DELETE CASCADE,
		weekday TEXT NOT NULL CHECK(weekday IN ('월','화','수','목','금','토','일')),
		hours   TEXT NOT NULL,
		PRIMARY KEY (spot_id, weekday)
	)`,

	`CREATE TABLE IF NOT EXISTS spot_notes (
		spot_id  TEXT NOT NULL REFERENCES spots(id) ON DELETE CASCADE,
		kind     TEXT NOT NULL CHECK(kind IN ('highlight','tip')),
		position INTEGER NOT NULL,
		body     TEXT NOT NULL,
		PRIMARY KEY (spot_id, kind, position)
	)`,
}
