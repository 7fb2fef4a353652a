// Package source reads raw string-valued rows from delimited files.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"homecare-etl/internal/models"
)

// CSVSource streams header-keyed rows out of a CSV file.
type CSVSource struct {
	logger *zap.Logger
}

// NewCSVSource creates a CSV row source.
func NewCSVSource(logger *zap.Logger) *CSVSource {
	return &CSVSource{logger: logger}
}

// ReadRows reads the whole file and returns its rows in order, keyed by the
// header line. A missing or unreadable file is fatal for the run. Ragged
// rows are tolerated: cells past the header width are dropped and short
// rows simply leave keys absent.
func (s *CSVSource) ReadRows(path string) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("source file %s is empty", path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var rows []models.RawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		row := make(models.RawRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	s.logger.Info("read source file", zap.String("path", path), zap.Int("rows", len(rows)))
	return rows, nil
}
