package inventory

// Thresholds are the fixed rule constants. They are passed to the
// classifier rather than read from package state.
type Thresholds struct {
	// MaxShortfallCoverage splits Shortfall (<=) from Oversupply (>).
	MaxShortfallCoverage float64
	// AccuracyCutoff: Shortfall needs accuracy >= cutoff, Oversupply <= cutoff.
	AccuracyCutoff float64
	// MaxLeadTimeDays: longer lead times are a supplier risk.
	MaxLeadTimeDays float64
	// MinOnTimeDeliveryRate: lower rates are a supplier risk.
	MinOnTimeDeliveryRate float64
}

// DefaultThresholds returns 2 periods, 0.8, 60 days and 0.85.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxShortfallCoverage:  2,
		AccuracyCutoff:        0.8,
		MaxLeadTimeDays:       60,
		MinOnTimeDeliveryRate: 0.85,
	}
}

// Rule is one independent classification predicate.
type Rule struct {
	Category RiskCategory
	Match    func(InventoryItem) bool
}

// Classifier evaluates the rule set. It holds no per-item state, so one
// instance may classify items from any number of goroutines.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds the four rules from t.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{rules: []Rule{
		{
			// Zero coverage is out of stock, not at risk of running out.
			Category: CategoryShortfall,
			Match: func(it InventoryItem) bool {
				return it.TotalCoverage > 0 &&
					it.TotalCoverage <= t.MaxShortfallCoverage &&
					it.ForecastAccuracy >= t.AccuracyCutoff
			},
		},
		{
			Category: CategoryOversupply,
			Match: func(it InventoryItem) bool {
				return it.TotalCoverage > t.MaxShortfallCoverage &&
					it.ForecastAccuracy <= t.AccuracyCutoff
			},
		},
		{
			Category: CategoryDeadStock,
			Match: func(it InventoryItem) bool {
				return it.OnHand > 0 && it.TrailingDemand == 0
			},
		},
		{
			Category: CategorySupplierRisk,
			Match: func(it InventoryItem) bool {
				return it.LeadTimeDays > t.MaxLeadTimeDays ||
					it.OnTimeDeliveryRate < t.MinOnTimeDeliveryRate
			},
		},
	}}
}

// DefaultClassifier uses DefaultThresholds.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultThresholds())
}

// Classify returns the matching categories in rule order. An empty result
// means the item is healthy.
func (c *Classifier) Classify(item InventoryItem) []RiskCategory {
	var out []RiskCategory
	for _, r := range c.rules {
		if r.Match(item) {
			out = append(out, r.Category)
		}
	}
	return out
}
