package decode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"export.csv", FormatCSV},
		{"EXPORT.CSV", FormatCSV},
		{"export.tsv", FormatTSV},
		{"export.txt", FormatText},
		{"stock report.xlsx", FormatXLSX},
		{"macro.xlsm", FormatXLSX},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := FormatOf("report.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = FormatOf("noextension")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_CSV(t *testing.T) {
	input := "SKU,Location,OH Coverage,Supplier\n" +
		"A-1,DC1,1.5,Acme\n" +
		"\n" +
		"A-2,,\"2,5\",\n"

	recs, err := Decode("stock.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, []string{"SKU", "Location", "OH Coverage", "Supplier"}, recs[0].Headers())
	assert.Equal(t, inventory.Text("A-1"), recs[0].Get("SKU"))
	assert.Equal(t, inventory.Text("1.5"), recs[0].Get("OH Coverage"))

	assert.Equal(t, inventory.Text("2,5"), recs[1].Get("OH Coverage"))
	assert.True(t, recs[1].Get("Location").IsAbsent(), "empty cells are absent")
	assert.True(t, recs[1].Get("Supplier").IsAbsent())
	assert.Equal(t, 4, recs[1].Len(), "absent cells keep their header")
}

func TestDecode_HeaderRowIsFirstNonBlank(t *testing.T) {
	input := "\n,,\nSKU,Qty\nA,1\n"

	recs, err := Decode("stock.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"SKU", "Qty"}, recs[0].Headers())
}

func TestDecode_HeaderNaming(t *testing.T) {
	input := "SKU,,Qty,Qty,,SKU\nA,x,1,2,y,B\n"

	recs, err := Decode("stock.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, []string{"SKU", "__EMPTY", "Qty", "Qty_1", "__EMPTY_1", "SKU_1"}, recs[0].Headers())
	assert.Equal(t, "x", recs[0].Get("__EMPTY").String())
	assert.Equal(t, "2", recs[0].Get("Qty_1").String())
	assert.Equal(t, "B", recs[0].Get("SKU_1").String())
}

func TestDecode_CleansCells(t *testing.T) {
	input := "\xEF\xBB\xBFSKU,Qty\n=\"00123\",  7  \n"

	recs, err := Decode("stock.csv", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "SKU", recs[0].Headers()[0], "bom must not leak into the first header")
	assert.Equal(t, "00123", recs[0].Get("SKU").String())
	assert.Equal(t, "7", recs[0].Get("Qty").String())
}

func TestDecode_ExtraCellsBeyondHeaderAreDropped(t *testing.T) {
	recs, err := Decode("stock.csv", strings.NewReader("SKU\nA,extra\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].Len())
}

func TestDecode_EmptyFile(t *testing.T) {
	for _, name := range []string{"empty.csv", "empty.txt", "empty.xlsx"} {
		recs, err := Decode(name, bytes.NewReader(nil))
		require.NoError(t, err, name)
		assert.NotNil(t, recs, name)
		assert.Empty(t, recs, name)
	}
}

func TestDecode_HeaderOnly(t *testing.T) {
	recs, err := Decode("stock.csv", strings.NewReader("SKU,Qty\n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestDecode_TSV(t *testing.T) {
	recs, err := Decode("stock.tsv", strings.NewReader("SKU\tQty\nA,1\t5\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A,1", recs[0].Get("SKU").String())
	assert.Equal(t, "5", recs[0].Get("Qty").String())
}

func TestDecode_TextSniffsDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"semicolon", "SKU;Location;Qty\nA;DC1;5\n"},
		{"tab", "SKU\tLocation\tQty\nA\tDC1\t5\n"},
		{"pipe", "SKU|Location|Qty\nA|DC1|5\n"},
		{"comma", "SKU,Location,Qty\nA,DC1,5\n"},
		{"leading blank line", "\n\nSKU;Location;Qty\nA;DC1;5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := Decode("stock.txt", strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, []string{"SKU", "Location", "Qty"}, recs[0].Headers())
			assert.Equal(t, "DC1", recs[0].Get("Location").String())
		})
	}
}

func TestSniffDelimiter_DefaultsToComma(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter([]byte("SKU\nA\n")))
	assert.Equal(t, ',', sniffDelimiter(nil))
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode("stock.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_XLSX(t *testing.T) {
	data := workbook(t, [][]any{
		{"SKU", "OH Coverage", "Forecast Accuracy", "Supplier"},
		{"00123", 1.5, 0.85, "Acme"},
		{},
		{"A-2", 4, nil, "Globex"},
	})

	recs, err := Decode("stock.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, []string{"SKU", "OH Coverage", "Forecast Accuracy", "Supplier"}, recs[0].Headers())
	assert.Equal(t, inventory.Text("00123"), recs[0].Get("SKU"), "string cells keep leading zeros")
	assert.Equal(t, inventory.Number(1.5), recs[0].Get("OH Coverage"))
	assert.Equal(t, inventory.Number(0.85), recs[0].Get("Forecast Accuracy"))
	assert.Equal(t, inventory.Text("Acme"), recs[0].Get("Supplier"))

	assert.Equal(t, inventory.Number(4), recs[1].Get("OH Coverage"))
	assert.True(t, recs[1].Get("Forecast Accuracy").IsAbsent())
}

func TestDecode_XLSXReadsFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"SKU"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"first"}))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &[]any{"SKU"}))
	require.NoError(t, f.SetSheetRow("Other", "A2", &[]any{"second"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := Decode("stock.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "first", recs[0].Get("SKU").String())
}

func TestDecode_InvalidSpreadsheet(t *testing.T) {
	_, err := Decode("stock.xlsx", strings.NewReader("this is not a zip archive"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid spreadsheet")
}

func TestCleanCell(t *testing.T) {
	tests := map[string]string{
		"  hello  ":   "hello",
		`="00123"`:    "00123",
		"=SUM":        "SUM",
		`"quoted"`:    "quoted",
		"'single'":    "single",
		"":            "",
		"   ":         "",
		"plain value": "plain value",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanCell(in), "CleanCell(%q)", in)
	}
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
