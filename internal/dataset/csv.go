package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
)

// CSVSource reads observations from a CSV file with header columns
// "latitude" and "longitude" (other columns are ignored)
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSV-backed dataset source
func NewCSVSource(path string) CSVSource {
	return CSVSource{Path: path}
}

// Load implements Source
func (s CSVSource) Load() ([]models.GeoPoint, int, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, 0, &UnavailableError{Cause: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, &UnavailableError{Cause: fmt.Errorf("failed to read header: %w", err)}
	}

	latIdx, lonIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "latitude":
			latIdx = i
		case "longitude":
			lonIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 {
		return nil, 0, &UnavailableError{
			Cause: fmt.Errorf("file does not contain 'latitude' and 'longitude' columns"),
		}
	}

	var points []models.GeoPoint
	total := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, &UnavailableError{Cause: fmt.Errorf("failed to read row: %w", err)}
		}
		if latIdx >= len(record) || lonIdx >= len(record) {
			log.Printf("[CSVSource] Skipping short row %d in %s", total+1, s.Path)
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)
		if latErr != nil || lonErr != nil {
			log.Printf("[CSVSource] Skipping unparsable row %d in %s", total+1, s.Path)
			continue
		}

		// Only parsable rows count toward the usable total
		total++
		if len(points) < MaxPoints {
			points = append(points, models.GeoPoint{Lat: lat, Lon: lon})
		}
	}

	return points, total, nil
}
