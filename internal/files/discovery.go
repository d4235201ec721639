package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DateLayout is the layout snapshot filenames are named by.
const DateLayout = "2006-01-02"

// SnapshotFile represents a discovered date-named snapshot file.
type SnapshotFile struct {
	Path string
	Name string
	// Label is the day label used in results, taken from the filename stem.
	Label string
	// Date parsed from the filename; snapshot ordering is defined by it.
	Date time.Time
}

// Discovery provides snapshot file discovery operations
type Discovery struct {
	logger *slog.Logger
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{logger: logger}
}

// FindSnapshotFiles finds all well-formed date-named snapshot files
// (YYYY-MM-DD.csv or YYYY-MM-DD.xlsx) in the directory, sorted ascending by
// date. Files whose names do not parse as dates are logged and skipped.
func (d *Discovery) FindSnapshotFiles(dir string) ([]SnapshotFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []SnapshotFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		date, err := time.Parse(DateLayout, stem)
		if err != nil {
			d.logger.Warn("skipping file with malformed date name",
				slog.String("filename", name))
			continue
		}

		files = append(files, SnapshotFile{
			Path:  filepath.Join(dir, name),
			Name:  name,
			Label: stem,
			Date:  date,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Date.Before(files[j].Date)
	})

	return files, nil
}

// FileFromPath builds a SnapshotFile for an explicitly named file, deriving
// the day label from the base filename. Used by pair mode, where files are
// given directly rather than discovered.
func FileFromPath(path string) SnapshotFile {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	f := SnapshotFile{Path: path, Name: name, Label: stem}
	if date, err := time.Parse(DateLayout, stem); err == nil {
		f.Date = date
	}
	return f
}
