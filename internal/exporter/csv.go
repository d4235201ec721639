package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pancakebitgit/escaner/internal/errors"
	"github.com/pancakebitgit/escaner/pkg/contracts/domain"
)

// ResultHeader is the fixed output column order.
var ResultHeader = []string{
	"FileDate_D1",
	"FileDate_D_Future",
	"ContractIdentifier",
	"Volume_D1",
	"OpenInt_D1",
	"OpenInt_D2",
	"DarkPoolActivity",
}

// CSVWriter assembles match results into CSV output.
type CSVWriter struct {
	logger *slog.Logger
	// bomPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	bomPrefix bool
}

// NewCSVWriter creates a new CSV result writer
func NewCSVWriter(logger *slog.Logger, bomPrefix bool) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger, bomPrefix: bomPrefix}
}

// Write emits the header and result rows to w in the fixed column order.
func (w *CSVWriter) Write(out io.Writer, results []domain.MatchResult) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(ResultHeader); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}

	for _, result := range results {
		if err := writer.Write(resultRow(result)); err != nil {
			return errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile persists results to a CSV file, creating parent directories as
// needed.
func (w *CSVWriter) WriteFile(path string, results []domain.MatchResult) error {
	w.logger.Info("writing results CSV",
		slog.String("path", path),
		slog.Int("result_count", len(results)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create results CSV file", err)
	}
	defer file.Close()

	if w.bomPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err)
		}
	}

	return w.Write(file, results)
}

// resultRow formats one MatchResult in the fixed column order.
func resultRow(r domain.MatchResult) []string {
	return []string{
		r.OriginDay,
		r.MatchedDay,
		r.ContractID,
		formatNumber(r.VolumeLast),
		formatNumber(r.OpenInterestLast),
		formatNumber(r.OpenInterestFirst),
		formatNumber(r.Activity),
	}
}

// formatNumber renders whole values without a decimal point, matching the
// integer counts carried by the input feeds, and keeps fractional values
// exact.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
