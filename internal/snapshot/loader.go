package snapshot

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pancakebitgit/escaner/internal/errors"
	"github.com/pancakebitgit/escaner/pkg/contracts/domain"
)

// ContractColumn is the canonical name of the contract-identifier column
// after header normalization.
const ContractColumn = "ContractIdentifier"

// legacyContractHeader is the header text some upstream exports carry on the
// contract-identifier column.
const legacyContractHeader = "Symbol,Symbol,Price~"

// Loader reads raw snapshot tables into canonical DailySnapshots.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new snapshot loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads a snapshot file (CSV or XLSX) into a DailySnapshot. The day
// label is derived from the filename stem. A read failure or a missing
// required column yields an error; the caller is expected to skip the file.
func (l *Loader) Load(path string) (*domain.DailySnapshot, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	snap, err := l.fromRows(rows)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	snap.Date = strings.TrimSuffix(name, filepath.Ext(name))
	snap.Path = path

	return snap, nil
}

// readCSVRows reads all rows of a CSV file, tolerating ragged row lengths.
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open snapshot file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to parse snapshot CSV", err).
			WithContext("path", path)
	}
	return rows, nil
}

// readXLSXRows reads all rows of the first non-empty sheet of an XLSX file.
func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open snapshot workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err == nil && len(rows) > 0 {
			return rows, nil
		}
	}

	return nil, errors.NewParsingError("no data sheet found in snapshot workbook", nil).
		WithContext("path", path)
}

// fromRows converts a raw header+data table into a DailySnapshot, locating
// columns by normalized header text. Row order is preserved exactly.
func (l *Loader) fromRows(rows [][]string) (*domain.DailySnapshot, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewParsingError("snapshot table has no header row", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = cleanHeader(h)
	}
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	contractCol := -1
	volumeCol := -1
	openIntCol := -1
	timeCol := -1

	for i, h := range headers {
		switch normalizeHeader(h) {
		case "contractidentifier", normalizeHeader(legacyContractHeader):
			if contractCol == -1 {
				contractCol = i
			}
		case "volume":
			volumeCol = i
		case "openint", "openinterest", "oi":
			openIntCol = i
		case "time", "timestamp":
			timeCol = i
		}
	}

	// The contract identifier is the first column when no header matched;
	// alternate header text is tolerated and remapped.
	if contractCol == -1 {
		l.logger.Warn("contract-identifier header not recognized, using first column",
			slog.String("header", headers[0]))
		contractCol = 0
	}
	if volumeCol == -1 || openIntCol == -1 {
		return nil, errors.NewParsingError("missing required column", nil).
			WithContext("headers", headers)
	}

	snap := &domain.DailySnapshot{}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		contractID := strings.TrimSpace(cell(row, contractCol))
		if contractID == "" {
			continue
		}

		snap.Records = append(snap.Records, domain.TransactionRecord{
			ContractID:   contractID,
			Volume:       strings.TrimSpace(cell(row, volumeCol)),
			OpenInterest: strings.TrimSpace(cell(row, openIntCol)),
			Timestamp:    strings.TrimSpace(cell(row, timeCol)),
		})
	}

	return snap, nil
}

// cleanHeader strips surrounding quotes and whitespace from a header cell.
func cleanHeader(h string) string {
	return strings.Trim(strings.TrimSpace(h), `"`)
}

// normalizeHeader lowercases a cleaned header and removes inner spaces so
// variants like "Open Int" and "OpenInt" compare equal.
func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(cleanHeader(h)), " ", "")
}

// cell returns the value at index i, or "" when the row is too short.
// Column index -1 (column absent) also yields "".
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
