package dataset

import (
	"database/sql"
	"fmt"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
)

// SQLiteSource reads observations from a SQLite table with latitude and
// longitude columns, in rowid order (insertion order)
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// NewSQLiteSource creates a SQLite-backed dataset source
func NewSQLiteSource(db *sql.DB, table string) *SQLiteSource {
	return &SQLiteSource{db: db, table: table}
}

// Load implements Source
func (s *SQLiteSource) Load() ([]models.GeoPoint, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %q`, s.table)
	if err := s.db.QueryRow(countQuery).Scan(&total); err != nil {
		return nil, 0, &UnavailableError{Cause: fmt.Errorf("failed to count observations: %w", err)}
	}

	query := fmt.Sprintf(`SELECT latitude, longitude FROM %q ORDER BY rowid LIMIT ?`, s.table)
	rows, err := s.db.Query(query, MaxPoints)
	if err != nil {
		return nil, 0, &UnavailableError{Cause: fmt.Errorf("failed to query observations: %w", err)}
	}
	defer rows.Close()

	var points []models.GeoPoint
	for rows.Next() {
		var lat, lon float64
		if err := rows.Scan(&lat, &lon); err != nil {
			return nil, 0, &UnavailableError{Cause: fmt.Errorf("failed to scan observation: %w", err)}
		}
		points = append(points, models.GeoPoint{Lat: lat, Lon: lon})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &UnavailableError{Cause: fmt.Errorf("failed to read observations: %w", err)}
	}

	return points, total, nil
}
