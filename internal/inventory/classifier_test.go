package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// healthyItem passes none of the rules; tests override single fields.
func healthyItem() InventoryItem {
	return InventoryItem{
		OnHandCoverageBase: 1.5,
		TotalCoverage:      1.5,
		ForecastAccuracy:   0.7,
		OnHand:             100,
		TrailingDemand:     100,
		LeadTimeDays:       30,
		OnTimeDeliveryRate: 0.95,
	}
}

func TestClassify_Scenarios(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name   string
		modify func(*InventoryItem)
		want   []RiskCategory
	}{
		{
			name: "shortfall",
			modify: func(it *InventoryItem) {
				it.TotalCoverage = 1.5
				it.ForecastAccuracy = 0.85
			},
			want: []RiskCategory{CategoryShortfall},
		},
		{
			name: "oversupply",
			modify: func(it *InventoryItem) {
				it.TotalCoverage = 4.0
				it.ForecastAccuracy = 0.5
			},
			want: []RiskCategory{CategoryOversupply},
		},
		{
			name: "dead stock with zero coverage is not a shortfall",
			modify: func(it *InventoryItem) {
				it.OnHand = 50
				it.TrailingDemand = 0
				it.TotalCoverage = 0
				it.ForecastAccuracy = 0.9
			},
			want: []RiskCategory{CategoryDeadStock},
		},
		{
			name: "long lead time is a supplier risk",
			modify: func(it *InventoryItem) {
				it.LeadTimeDays = 75
			},
			want: []RiskCategory{CategorySupplierRisk},
		},
		{
			name: "poor on-time delivery is a supplier risk",
			modify: func(it *InventoryItem) {
				it.OnTimeDeliveryRate = 0.84
			},
			want: []RiskCategory{CategorySupplierRisk},
		},
		{
			name:   "healthy",
			modify: func(*InventoryItem) {},
			want:   nil,
		},
		{
			name: "zero coverage and zero accuracy matches nothing",
			modify: func(it *InventoryItem) {
				it.TotalCoverage = 0
				it.ForecastAccuracy = 0
			},
			want: nil,
		},
		{
			name: "several rules at once",
			modify: func(it *InventoryItem) {
				it.TotalCoverage = 6
				it.ForecastAccuracy = 0.4
				it.TrailingDemand = 0
				it.LeadTimeDays = 90
			},
			want: []RiskCategory{CategoryOversupply, CategoryDeadStock, CategorySupplierRisk},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := healthyItem()
			tt.modify(&item)
			assert.Equal(t, tt.want, c.Classify(item))
		})
	}
}

func TestClassify_SupplierRiskRegardlessOfOtherFields(t *testing.T) {
	c := DefaultClassifier()
	item := InventoryItem{LeadTimeDays: 75, OnTimeDeliveryRate: 1}

	assert.Contains(t, c.Classify(item), CategorySupplierRisk)
}

func TestClassify_Boundaries(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		coverage float64
		accuracy float64
		want     []RiskCategory
	}{
		{name: "coverage exactly 2 with accuracy 0.8", coverage: 2.0, accuracy: 0.8, want: []RiskCategory{CategoryShortfall}},
		{name: "coverage exactly 2 with low accuracy", coverage: 2.0, accuracy: 0.5, want: nil},
		{name: "coverage just above 2 with accuracy 0.8", coverage: 2.0001, accuracy: 0.8, want: []RiskCategory{CategoryOversupply}},
		{name: "accuracy exactly 0.8 with low coverage", coverage: 1.0, accuracy: 0.8, want: []RiskCategory{CategoryShortfall}},
		{name: "accuracy just below 0.8 with low coverage", coverage: 1.0, accuracy: 0.7999, want: nil},
		{name: "accuracy exactly 0.8 with high coverage", coverage: 3.0, accuracy: 0.8, want: []RiskCategory{CategoryOversupply}},
		{name: "accuracy just above 0.8 with high coverage", coverage: 3.0, accuracy: 0.8001, want: nil},
		{name: "tiny positive coverage", coverage: 0.0001, accuracy: 0.9, want: []RiskCategory{CategoryShortfall}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := healthyItem()
			item.TotalCoverage = tt.coverage
			item.ForecastAccuracy = tt.accuracy
			assert.Equal(t, tt.want, c.Classify(item))
		})
	}
}

func TestClassify_SupplierBoundaries(t *testing.T) {
	c := DefaultClassifier()

	item := healthyItem()
	item.LeadTimeDays = 60
	item.OnTimeDeliveryRate = 0.85
	assert.Empty(t, c.Classify(item), "60 days and 0.85 are within limits")

	item.LeadTimeDays = 60.5
	assert.Equal(t, []RiskCategory{CategorySupplierRisk}, c.Classify(item))
}

func TestClassify_IsIdempotent(t *testing.T) {
	c := DefaultClassifier()
	item := healthyItem()
	item.TotalCoverage = 1.2
	item.ForecastAccuracy = 0.9
	item.LeadTimeDays = 80

	first := c.Classify(item)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(item))
	}
}

func TestNewClassifier_CustomThresholds(t *testing.T) {
	c := NewClassifier(Thresholds{
		MaxShortfallCoverage:  1,
		AccuracyCutoff:        0.5,
		MaxLeadTimeDays:       10,
		MinOnTimeDeliveryRate: 0.5,
	})

	item := healthyItem() // coverage 1.5, accuracy 0.7, lead 30
	assert.Equal(t, []RiskCategory{CategorySupplierRisk}, c.Classify(item))
}
