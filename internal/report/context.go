// Package report turns an aggregated analysis into a management report
// through an OpenAI-compatible chat completion endpoint.
package report

import (
	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

// DefaultCriticalLimit caps the critical items sent to the model.
const DefaultCriticalLimit = 25

// criticalOrder is the order buckets are drained into the critical list.
var criticalOrder = []inventory.RiskCategory{
	inventory.CategoryShortfall,
	inventory.CategorySupplierRisk,
	inventory.CategoryDeadStock,
	inventory.CategoryOversupply,
}

// Context is the condensed analysis a report is written from.
type Context struct {
	Summary       Summary        `json:"summary" yaml:"summary"`
	CriticalItems []CriticalItem `json:"criticalItems" yaml:"criticalItems"`
}

type Summary struct {
	TotalItems   int `json:"totalItems" yaml:"totalItems"`
	Shortfall    int `json:"shortfall" yaml:"shortfall"`
	Oversupply   int `json:"oversupply" yaml:"oversupply"`
	DeadStock    int `json:"deadStock" yaml:"deadStock"`
	SupplierRisk int `json:"supplierRisk" yaml:"supplierRisk"`
}

// CriticalItem is one flagged item with the metrics its rule looked at.
type CriticalItem struct {
	Identifier         string                 `json:"identifier" yaml:"identifier"`
	Location           string                 `json:"location" yaml:"location"`
	SupplierName       string                 `json:"supplierName" yaml:"supplierName"`
	Category           inventory.RiskCategory `json:"category" yaml:"category"`
	TotalCoverage      float64                `json:"totalCoverage" yaml:"totalCoverage"`
	ForecastAccuracy   float64                `json:"forecastAccuracy" yaml:"forecastAccuracy"`
	OnHand             float64                `json:"onHand" yaml:"onHand"`
	TrailingDemand     float64                `json:"trailingDemand" yaml:"trailingDemand"`
	LeadTimeDays       float64                `json:"leadTimeDays" yaml:"leadTimeDays"`
	OnTimeDeliveryRate float64                `json:"onTimeDeliveryRate" yaml:"onTimeDeliveryRate"`
}

// BuildContext condenses a into a report context holding at most limit
// critical items. A limit <= 0 uses DefaultCriticalLimit.
func BuildContext(a inventory.AggregatedAnalysis, limit int) Context {
	if limit <= 0 {
		limit = DefaultCriticalLimit
	}

	ctx := Context{
		Summary: Summary{
			TotalItems:   a.Summary.TotalItems,
			Shortfall:    a.Summary.Shortfall,
			Oversupply:   a.Summary.Oversupply,
			DeadStock:    a.Summary.DeadStock,
			SupplierRisk: a.Summary.SupplierRisk,
		},
		CriticalItems: []CriticalItem{},
	}

	for _, c := range criticalOrder {
		for _, r := range a.Bucket(c) {
			if len(ctx.CriticalItems) == limit {
				return ctx
			}
			ctx.CriticalItems = append(ctx.CriticalItems, criticalItem(r.Item, c))
		}
	}
	return ctx
}

func criticalItem(it inventory.InventoryItem, c inventory.RiskCategory) CriticalItem {
	return CriticalItem{
		Identifier:         it.Identifier,
		Location:           it.Location,
		SupplierName:       it.SupplierName,
		Category:           c,
		TotalCoverage:      it.TotalCoverage,
		ForecastAccuracy:   it.ForecastAccuracy,
		OnHand:             it.OnHand,
		TrailingDemand:     it.TrailingDemand,
		LeadTimeDays:       it.LeadTimeDays,
		OnTimeDeliveryRate: it.OnTimeDeliveryRate,
	}
}
