package files

import (
	"github.com/xuri/excelize/v2"
)

// ProbeWorkbook checks that the file at path opens as an xlsx workbook.
// It reads nothing beyond the archive structure.
func ProbeWorkbook(path string) error {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	return workbook.Close()
}
