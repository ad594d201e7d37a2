package inventory

// Aggregate classifies items in one pass. Every item goes into Items; each
// matching rule appends a separate single-category entry to its bucket.
// Counts are the bucket lengths.
func Aggregate(c *Classifier, items []InventoryItem) AggregatedAnalysis {
	out := AggregatedAnalysis{
		Shortfall:    []AnalysisResult{},
		Oversupply:   []AnalysisResult{},
		DeadStock:    []AnalysisResult{},
		SupplierRisk: []AnalysisResult{},
		Items:        make([]InventoryItem, 0, len(items)),
		Columns:      ColumnMap{},
	}

	for _, item := range items {
		out.Items = append(out.Items, item)
		for _, cat := range c.Classify(item) {
			entry := AnalysisResult{Item: item, Categories: []RiskCategory{cat}}
			switch cat {
			case CategoryShortfall:
				out.Shortfall = append(out.Shortfall, entry)
			case CategoryOversupply:
				out.Oversupply = append(out.Oversupply, entry)
			case CategoryDeadStock:
				out.DeadStock = append(out.DeadStock, entry)
			case CategorySupplierRisk:
				out.SupplierRisk = append(out.SupplierRisk, entry)
			}
		}
	}

	out.TotalItems = len(out.Items)
	out.Summary = Summary{
		TotalItems:   out.TotalItems,
		Shortfall:    len(out.Shortfall),
		Oversupply:   len(out.Oversupply),
		DeadStock:    len(out.DeadStock),
		SupplierRisk: len(out.SupplierRisk),
	}
	return out
}
