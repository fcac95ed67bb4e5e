package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListSpreadsheets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.xlsx", "notes.txt", "upper.XLSX"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.xlsx"), 0o755))

	found, err := ListSpreadsheets(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
	}
	// Sorted by path; the directory and the .XLSX file are excluded.
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, names)
	assert.Equal(t, int64(1), found[0].Size)
	assert.False(t, found[0].ModTime.IsZero())
}

func TestListSpreadsheetsMissingDirectory(t *testing.T) {
	_, err := ListSpreadsheets(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestProbeWorkbook(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.xlsx")
	wb := excelize.NewFile()
	require.NoError(t, wb.SaveAs(good))
	require.NoError(t, wb.Close())
	assert.NoError(t, ProbeWorkbook(good))

	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip archive"), 0o644))
	assert.Error(t, ProbeWorkbook(bad))
}
