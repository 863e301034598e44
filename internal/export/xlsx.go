// Package export renders the full ledger as an xlsx workbook held in
// memory, ready to be sent as a chat attachment.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"budgetbot/internal/core"
)

const sheetName = "Budget"

var headers = []string{"ID", "User", "Date", "Category", "Amount"}

// Workbook builds an xlsx document with a header row and one row per
// entry, in the order given (callers pass entries in id order). The
// workbook is returned as bytes; nothing is written to disk.
func Workbook(entries []core.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("set header %s: %w", header, err)
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []any{e.ID, e.User, e.Date, string(e.Category), e.Amount}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
