package decode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

// decodeWorkbook reads the first worksheet. Numeric cells become numbers;
// string cells stay text even when they look numeric, so codes such as
// "00123" keep their leading zeros.
func decodeWorkbook(r io.Reader) ([]inventory.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return []inventory.RawRecord{}, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []inventory.RawRecord{}, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: %w", err)
	}

	return buildRecords(rows, func(row, col int, s string) inventory.Value {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return inventory.Text(s)
		}
		if isStringCell(f, sheet, row, col) {
			return inventory.Text(s)
		}
		return inventory.Number(n)
	}), nil
}

func isStringCell(f *excelize.File, sheet string, row, col int) bool {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return false
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		// CellTypeFormula is t="str", a formula with a string result.
		return true
	}
	return false
}
