package sheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var ErrSheetNotFound = errors.New("sheet not found in workbook")

// ReadXLSX maps a worksheet tab of an .xlsx workbook with the same column
// contract as MapRows. An empty sheetName reads the first tab.
func ReadXLSX(r io.Reader, sheetName, topicID string, filter *int) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		names := f.GetSheetList()
		if len(names) == 0 {
			return Result{}, errors.New("workbook has no sheets")
		}
		sheetName = names[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return Result{}, fmt.Errorf("%q: %w", sheetName, ErrSheetNotFound)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return Result{}, fmt.Errorf("read rows of %q: %w", sheetName, err)
	}
	return MapTable(rows, topicID, filter), nil
}
