// Package files discovers exam spreadsheets in the configured source
// directory. Only top-level .xlsx entries count; the match is
// case-sensitive so stray .XLSX exports stay invisible to the engine.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SpreadsheetExt is the only file extension the engine reads.
const SpreadsheetExt = ".xlsx"

// FileInfo describes one discovered spreadsheet.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// ListSpreadsheets returns the spreadsheets directly under dir, sorted by
// path for deterministic iteration. A missing directory surfaces as the
// underlying fs.ErrNotExist so callers can treat it as an empty source.
func ListSpreadsheets(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet directory %s: %w", dir, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SpreadsheetExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Path < found[j].Path
	})
	return found, nil
}
