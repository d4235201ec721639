package files

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestFindSnapshotFiles(t *testing.T) {
	dir := t.TempDir()

	// Deliberately created out of order; discovery must sort by date.
	touch(t, dir, "2025-06-14.csv")
	touch(t, dir, "2025-06-12.csv")
	touch(t, dir, "2025-06-13.xlsx")
	touch(t, dir, "notes.txt")
	touch(t, dir, "summary.csv")       // not date-named
	touch(t, dir, "2025-13-40.csv")    // impossible date
	touch(t, dir, "2025-06-12 v2.csv") // malformed stem
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2025-06-11.csv"), 0755))

	discovery := NewDiscovery(slog.Default())
	found, err := discovery.FindSnapshotFiles(dir)
	require.NoError(t, err)

	require.Len(t, found, 3)
	assert.Equal(t, "2025-06-12", found[0].Label)
	assert.Equal(t, "2025-06-13", found[1].Label)
	assert.Equal(t, "2025-06-14", found[2].Label)
	assert.Equal(t, filepath.Join(dir, "2025-06-13.xlsx"), found[1].Path)
	assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), found[0].Date)
}

func TestFindSnapshotFilesEmptyDirectory(t *testing.T) {
	discovery := NewDiscovery(slog.Default())
	found, err := discovery.FindSnapshotFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindSnapshotFilesMissingDirectory(t *testing.T) {
	discovery := NewDiscovery(slog.Default())
	_, err := discovery.FindSnapshotFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFileFromPath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantLabel string
	}{
		{
			name:      "date-named csv",
			path:      filepath.Join("data", "2025-06-12.csv"),
			wantLabel: "2025-06-12",
		},
		{
			name:      "non-date stem keeps the stem as label",
			path:      filepath.Join("data", "monday-batch.csv"),
			wantLabel: "monday-batch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FileFromPath(tt.path)
			assert.Equal(t, tt.path, f.Path)
			assert.Equal(t, tt.wantLabel, f.Label)
		})
	}
}
