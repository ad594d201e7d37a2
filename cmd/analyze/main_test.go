package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

const exportCSV = `SKU,Location,OH Coverage,Forecast Accuracy,On Hand,L3M Sales
SHORT,DC1,1.5,90%,10,5
DEAD,DC2,0,N/A,50,NO SALE
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_JSON(t *testing.T) {
	path := writeFile(t, "stock.csv", exportCSV)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{path}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	var got []fileReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, path, got[0].File)
	assert.Equal(t, 2, got[0].Report.Summary.TotalItems)
	assert.Equal(t, 1, got[0].Report.Summary.Shortfall)
	assert.Equal(t, 1, got[0].Report.Summary.DeadStock)
	assert.Contains(t, got[0].Unresolved, inventory.FieldSupplierName)
}

func TestRun_YAML(t *testing.T) {
	path := writeFile(t, "stock.csv", exportCSV)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-format", "yaml", "-critical", "1", path}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "totalItems: 2")

	var got []fileReport
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Len(t, got[0].Report.CriticalItems, 1)
	assert.Equal(t, "SHORT", got[0].Report.CriticalItems[0].Identifier)
}

func TestRun_FailedFileStillReportsOthers(t *testing.T) {
	good := writeFile(t, "stock.csv", exportCSV)
	empty := writeFile(t, "empty.csv", "")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{good, empty}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "FILE005")
	var got []fileReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"-format", "xml", "x.csv"}, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"-bogus"}, &stdout, &stderr))
}
