package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

func TestRecordAnalysis(t *testing.T) {
	a := inventory.Aggregate(inventory.DefaultClassifier(), []inventory.InventoryItem{
		{TotalCoverage: 1, ForecastAccuracy: 0.9, OnTimeDeliveryRate: 1},
		{OnHand: 5, OnTimeDeliveryRate: 1},
	})
	a.Columns = inventory.ColumnMap{inventory.FieldIdentifier: "SKU"}

	beforeRows := testutil.ToFloat64(RowsAnalyzed.WithLabelValues("csv"))
	beforeShort := testutil.ToFloat64(ItemsFlagged.WithLabelValues("Shortfall"))
	beforeDead := testutil.ToFloat64(ItemsFlagged.WithLabelValues("DeadStock"))
	beforeOTD := testutil.ToFloat64(UnresolvedColumns.WithLabelValues("onTimeDeliveryRate"))
	beforeOK := testutil.ToFloat64(AnalysesTotal.WithLabelValues("csv", "success"))

	RecordAnalysis("csv", "success", 20*time.Millisecond, &a)

	assert.Equal(t, beforeRows+2, testutil.ToFloat64(RowsAnalyzed.WithLabelValues("csv")))
	assert.Equal(t, beforeShort+1, testutil.ToFloat64(ItemsFlagged.WithLabelValues("Shortfall")))
	assert.Equal(t, beforeDead+1, testutil.ToFloat64(ItemsFlagged.WithLabelValues("DeadStock")))
	assert.Equal(t, beforeOTD+1, testutil.ToFloat64(UnresolvedColumns.WithLabelValues("onTimeDeliveryRate")))
	assert.Equal(t, beforeOK+1, testutil.ToFloat64(AnalysesTotal.WithLabelValues("csv", "success")))
}

func TestRecordAnalysis_FailureHasNoResult(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("xlsx", "error"))

	RecordAnalysis("xlsx", "error", time.Millisecond, nil)

	assert.Equal(t, before+1, testutil.ToFloat64(AnalysesTotal.WithLabelValues("xlsx", "error")))
}

func TestRecordReportAndRejection(t *testing.T) {
	before := testutil.ToFloat64(ReportsTotal.WithLabelValues("diagnostic", "success"))
	RecordReport("diagnostic", "success", time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(ReportsTotal.WithLabelValues("diagnostic", "success")))

	before = testutil.ToFloat64(RejectionsTotal.WithLabelValues("rate_limited"))
	RecordRejection("rate_limited")
	assert.Equal(t, before+1, testutil.ToFloat64(RejectionsTotal.WithLabelValues("rate_limited")))
}
