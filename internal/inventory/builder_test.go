package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullHeaders = []string{
	"SKU", "Location", "Demand Type",
	"OH Coverage", "In Transit Coverage", "Other Coverage",
	"Forecast Accuracy", "On Hand Qty", "L3M Sales",
	"Supplier", "Lead Time", "OTD",
}

func TestBuildItem_FullRow(t *testing.T) {
	rec := record(fullHeaders,
		Text("A-100"), Text("DC1"), Text("Stable"),
		Number(0.75), Text("0.5"), Text("0.25"),
		Text("85%"), Text("1,200"), Number(300),
		Text("Acme"), Number(45), Number(92),
	)
	cols := DefaultResolver().Resolve(rec)

	item := BuildItem(rec, cols, 3)

	assert.Equal(t, RowID(3), item.RowID)
	assert.Equal(t, 3, item.RowIndex)
	assert.Equal(t, "A-100", item.Identifier)
	assert.Equal(t, "DC1", item.Location)
	assert.Equal(t, "Stable", item.DemandType)
	assert.InDelta(t, 0.75, item.OnHandCoverageBase, 1e-9)
	assert.InDelta(t, 0.5, item.InTransitCoverage, 1e-9)
	assert.InDelta(t, 0.25, item.OtherCoverage, 1e-9)
	assert.InDelta(t, 1.5, item.TotalCoverage, 1e-9)
	assert.InDelta(t, 0.85, item.ForecastAccuracy, 1e-9)
	assert.InDelta(t, 1200, item.OnHand, 1e-9)
	assert.InDelta(t, 300, item.TrailingDemand, 1e-9)
	assert.Equal(t, "Acme", item.SupplierName)
	assert.InDelta(t, 45, item.LeadTimeDays, 1e-9)
	assert.InDelta(t, 0.92, item.OnTimeDeliveryRate, 1e-9)
	assert.Equal(t, rec, item.Raw)
}

func TestBuildItem_TotalCoverageIsSumOfComponents(t *testing.T) {
	rows := [][]Value{
		{Number(1.1), Number(2.2), Number(3.3)},
		{Text("N/A"), Number(4), Absent()},
		{Text("-"), Text("NO SALE"), Text("garbage")},
		{Number(-1), Number(0.5), Number(0.5)},
	}

	headers := []string{"OH Coverage", "In Transit Coverage", "Other Coverage"}
	for i, vals := range rows {
		rec := record(headers, vals...)
		item := BuildItem(rec, DefaultResolver().Resolve(rec), i)
		assert.Equal(t, item.OnHandCoverageBase+item.InTransitCoverage+item.OtherCoverage, item.TotalCoverage, "row %d", i)
	}
}

func TestBuildItem_UnresolvedDataset(t *testing.T) {
	rec := record([]string{"Foo", "Bar"}, Text("x"), Number(9))
	cols := DefaultResolver().Resolve(rec)

	item := BuildItem(rec, cols, 0)

	assert.Equal(t, UnknownText, item.Identifier)
	assert.Equal(t, UnknownText, item.Location)
	assert.Equal(t, UnknownText, item.DemandType)
	assert.Equal(t, UnknownSupplier, item.SupplierName)
	assert.Zero(t, item.TotalCoverage)
	assert.Zero(t, item.ForecastAccuracy)
	assert.Zero(t, item.OnHand)
	assert.Zero(t, item.TrailingDemand)
	assert.Zero(t, item.LeadTimeDays)
	assert.Equal(t, DefaultOnTimeDeliveryRate, item.OnTimeDeliveryRate)
}

func TestBuildItem_BlankTextFallsBack(t *testing.T) {
	rec := record([]string{"SKU", "Supplier", "OTD"}, Text("  "), Text(""), Absent())
	cols := DefaultResolver().Resolve(rec)

	item := BuildItem(rec, cols, 0)

	assert.Equal(t, UnknownText, item.Identifier)
	assert.Equal(t, UnknownSupplier, item.SupplierName)
	// A resolved column with an empty cell normalizes to 0, not the default.
	assert.Zero(t, item.OnTimeDeliveryRate)
}

func TestRowID_IsDeterministic(t *testing.T) {
	assert.Equal(t, RowID(7), RowID(7))
	assert.NotEqual(t, RowID(7), RowID(8))
}

func TestRawRecord_MarshalJSONKeepsHeaderOrder(t *testing.T) {
	rec := record([]string{"Zeta", "Alpha", "Mid"}, Number(1), Text("two"), Absent())

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":1,"Alpha":"two","Mid":null}`, string(data))
}

func TestNewRawRecord_CopiesInput(t *testing.T) {
	headers := []string{"SKU"}
	cells := map[string]Value{"SKU": Text("A"), "Stray": Text("dropped")}

	rec := NewRawRecord(headers, cells)
	headers[0] = "Changed"
	cells["SKU"] = Text("B")

	assert.Equal(t, []string{"SKU"}, rec.Headers())
	assert.Equal(t, "A", rec.Get("SKU").String())
	assert.True(t, rec.Get("Stray").IsAbsent())
	assert.Equal(t, 1, rec.Len())
}
