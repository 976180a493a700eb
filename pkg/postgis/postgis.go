// Package postgis provides a PostGIS-backed point store used as a
// comparison baseline for the in-process cell index benchmarks. Each stored
// point carries its grid code alongside the geometry.
package postgis

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
)

type Store struct {
	db *sql.DB
}

// NewStore creates a new PostGIS connection
func NewStore(host, user, password, dbname string, port int) (*Store, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// InitSchema creates the points table
func (s *Store) InitSchema() error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`DROP TABLE IF EXISTS grid_points;`,
		`CREATE TABLE grid_points (
			id TEXT PRIMARY KEY,
			code CHAR(9) NOT NULL,
			location GEOMETRY(POINT, 4326)
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}

	return nil
}

// CreateSpatialIndex creates a GIST index on the geometry column and a
// btree index on the grid code
func (s *Store) CreateSpatialIndex() error {
	queries := []string{
		`CREATE INDEX idx_grid_points_location ON grid_points USING GIST(location);`,
		`CREATE INDEX idx_grid_points_code ON grid_points(code);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if _, err := s.db.Exec("ANALYZE grid_points;"); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}

	return nil
}

// BulkInsertPoints inserts points in batches. Points without a grid code
// get one from the codec.
func (s *Store) BulkInsertPoints(points []*models.Point) error {
	const batchSize = 10000

	stmt, err := s.db.Prepare(`
		INSERT INTO grid_points (id, code, location)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStmt := tx.Stmt(stmt)

	for i := 0; i < len(points); i++ {
		point := points[i]
		if point.Location == nil {
			continue
		}

		code := point.Code
		if code == "" {
			code, err = gridcode.Encode(point.Location.Lat, point.Location.Lon, false)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to encode point %s: %w", point.ID, err)
			}
		}

		_, err := txStmt.Exec(point.ID, code, point.Location.Lon, point.Location.Lat)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert point %s: %w", point.ID, err)
		}

		if (i+1)%batchSize == 0 {
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit batch: %w", err)
			}

			tx, err = s.db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin new transaction: %w", err)
			}
			txStmt = tx.Stmt(stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final batch: %w", err)
	}

	return nil
}

// QueryBox performs a bounding box query
func (s *Store) QueryBox(box models.BoundingBox) ([]*models.Point, error) {
	query := `
		SELECT id, code, ST_Y(location) as lat, ST_X(location) as lon
		FROM grid_points
		WHERE location && ST_MakeEnvelope($1, $2, $3, $4, 4326)
	`

	rows, err := s.db.Query(query,
		box.BottomLeft.Lon, box.BottomLeft.Lat,
		box.TopRight.Lon, box.TopRight.Lat)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

// QueryRadius returns all points within radiusMeters of the center
func (s *Store) QueryRadius(center models.Coordinate, radiusMeters float64) ([]*models.Point, error) {
	query := `
		SELECT id, code, ST_Y(location) as lat, ST_X(location) as lon
		FROM grid_points
		WHERE ST_DWithin(
			location::geography,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3
		)
	`

	rows, err := s.db.Query(query, center.Lon, center.Lat, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return scanPoints(rows)
}

func scanPoints(rows *sql.Rows) ([]*models.Point, error) {
	var results []*models.Point
	for rows.Next() {
		var id, code string
		var lat, lon float64

		if err := rows.Scan(&id, &code, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, &models.Point{
			ID:   id,
			Code: code,
			Location: &models.Coordinate{
				Lat: lat,
				Lon: lon,
			},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// Count returns the number of points in the database
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM grid_points").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
