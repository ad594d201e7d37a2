package inventory

import (
	"io"
	"log/slog"
)

// Analyzer runs the whole pipeline for one dataset at a time. It keeps no
// state between calls; concurrent Analyze calls are independent.
type Analyzer struct {
	resolver   *Resolver
	classifier *Classifier
	logger     *slog.Logger
}

// NewAnalyzer wires a resolver and classifier. A nil logger discards output.
func NewAnalyzer(resolver *Resolver, classifier *Classifier, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		resolver:   resolver,
		classifier: classifier,
		logger:     logger,
	}
}

// DefaultAnalyzer uses the built-in synonyms and thresholds.
func DefaultAnalyzer(logger *slog.Logger) *Analyzer {
	return NewAnalyzer(DefaultResolver(), DefaultClassifier(), logger)
}

// Analyze resolves columns from the first record, builds one item per
// record and aggregates them. Zero records give an empty result with
// TotalItems == 0; detecting that is the caller's job.
func (a *Analyzer) Analyze(records []RawRecord) AggregatedAnalysis {
	if len(records) == 0 {
		a.logger.Info("analysis skipped: no records")
		return Aggregate(a.classifier, nil)
	}

	cols := a.resolver.Resolve(records[0])
	a.logger.Debug("columns resolved",
		"resolved", len(cols),
		"unresolved", cols.Unresolved(),
	)
	for _, f := range SchemaFields {
		if h, ok := cols.Lookup(f); ok {
			a.logger.Debug("column", "field", f, "header", h)
		}
	}

	items := make([]InventoryItem, len(records))
	for i, rec := range records {
		items[i] = BuildItem(rec, cols, i)
	}

	result := Aggregate(a.classifier, items)
	result.Columns = cols

	a.logger.Info("analysis complete",
		"items", result.TotalItems,
		"shortfall", result.Summary.Shortfall,
		"oversupply", result.Summary.Oversupply,
		"dead_stock", result.Summary.DeadStock,
		"supplier_risk", result.Summary.SupplierRisk,
	)
	return result
}
