package exporter

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pancakebitgit/escaner/pkg/contracts/domain"
)

func sampleResults() []domain.MatchResult {
	return []domain.MatchResult{
		{
			OriginDay:         "2025-06-12",
			MatchedDay:        "2025-06-13",
			ContractID:        "AAPL|20250620|235.00P",
			VolumeLast:        150,
			OpenInterestLast:  1050,
			OpenInterestFirst: 1250,
			Activity:          50,
		},
		{
			OriginDay:         "2025-06-13",
			MatchedDay:        "2025-06-15",
			ContractID:        "SPY|20250620|500.00C",
			VolumeLast:        70,
			OpenInterestLast:  1000,
			OpenInterestFirst: 1090.5,
			Activity:          20.5,
		},
	}
}

func TestWriteColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(slog.Default(), false)
	require.NoError(t, writer.Write(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, ResultHeader, rows[0])
	assert.Equal(t, []string{
		"2025-06-12", "2025-06-13", "AAPL|20250620|235.00P",
		"150", "1050", "1250", "50",
	}, rows[1])
	assert.Equal(t, []string{
		"2025-06-13", "2025-06-15", "SPY|20250620|500.00C",
		"70", "1000", "1090.5", "20.5",
	}, rows[2])
}

func TestWriteEmptyResultsStillEmitsHeader(t *testing.T) {
	var buf bytes.Buffer
	writer := NewCSVWriter(slog.Default(), false)
	require.NoError(t, writer.Write(&buf, nil))

	assert.Equal(t, strings.Join(ResultHeader, ",")+"\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	tests := []struct {
		name    string
		bom     bool
		wantBOM bool
	}{
		{name: "with BOM prefix", bom: true, wantBOM: true},
		{name: "without BOM prefix", bom: false, wantBOM: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "results", "darkpool.csv")
			writer := NewCSVWriter(slog.Default(), tt.bom)
			require.NoError(t, writer.WriteFile(path, sampleResults()))

			data, err := os.ReadFile(path)
			require.NoError(t, err)

			hasBOM := bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
			assert.Equal(t, tt.wantBOM, hasBOM)

			rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
			require.NoError(t, err)
			assert.Len(t, rows, 3)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1050, "1050"},
		{0.0001, "0.0001"},
		{20.5, "20.5"},
		{-5, "-5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}
