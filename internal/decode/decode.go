// Package decode turns uploaded inventory exports into ordered records.
//
// Supported inputs are delimited text (.csv, .tsv, .txt) and workbooks
// (.xlsx, .xlsm). Only the first worksheet of a workbook is read. The first
// non-blank row is the header row; every later non-blank row becomes one
// inventory.RawRecord keyed by those headers.
package decode

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a decoder.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatText Format = "txt"
	FormatXLSX Format = "xlsx"
)

// emptyHeader names header cells that are blank.
const emptyHeader = "__EMPTY"

// FormatOf picks the decoder for a file name by extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".txt":
		return FormatText, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Decode reads the whole export behind r. A file with no data rows
// decodes to an empty slice and a nil error.
func Decode(name string, r io.Reader) ([]inventory.RawRecord, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatXLSX:
		return decodeWorkbook(r)
	case FormatTSV:
		rows, err = readDelimited(r, '\t')
	case FormatText:
		rows, err = readDelimited(r, 0)
	default:
		rows, err = readDelimited(r, ',')
	}
	if err != nil {
		return nil, err
	}

	return buildRecords(rows, func(_, _ int, s string) inventory.Value {
		return inventory.Text(s)
	}), nil
}

// cellFunc converts one cleaned, non-empty cell. row and col are 0-based
// positions in the source grid.
type cellFunc func(row, col int, s string) inventory.Value

// buildRecords applies the header row convention to a cell grid.
func buildRecords(rows [][]string, convert cellFunc) []inventory.RawRecord {
	headerRow := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return []inventory.RawRecord{}
	}

	headers := uniqueHeaders(rows[headerRow])

	records := make([]inventory.RawRecord, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		cells := make(map[string]inventory.Value, len(headers))
		for col, h := range headers {
			if col >= len(row) {
				break
			}
			if s := CleanCell(row[col]); s != "" {
				cells[h] = convert(i, col, s)
			}
		}
		records = append(records, inventory.NewRawRecord(headers, cells))
	}
	return records
}

// uniqueHeaders cleans header cells, names blanks __EMPTY and suffixes
// repeats with _1, _2, ... so every key is distinct.
func uniqueHeaders(row []string) []string {
	headers := make([]string, len(row))
	seen := make(map[string]bool, len(row))

	for i, cell := range row {
		name := CleanCell(cell)
		if name == "" {
			name = emptyHeader
		}

		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = name + "_" + strconv.Itoa(n)
		}
		seen[candidate] = true
		headers[i] = candidate
	}
	return headers
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if CleanCell(c) != "" {
			return false
		}
	}
	return true
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="..."), and
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}
