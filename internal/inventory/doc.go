// Package inventory turns decoded inventory export rows into classified items.
//
// The package is pure computation with no I/O. It receives the rows an
// export decoder produced and returns one [AggregatedAnalysis]; it never
// knows where the rows came from or how the result is rendered.
//
// # Pipeline
//
//  1. Column resolution: [Resolver.Resolve] maps each [SchemaField] onto one
//     of the export's headers, using the first record only.
//  2. Normalization: [NormalizeNumeric] and [NormalizePercentage] turn loose
//     cell values into numbers without ever failing.
//  3. Item building: [BuildItem] assembles an [InventoryItem] and derives the
//     total coverage from its three components.
//  4. Classification: [Classifier.Classify] evaluates four independent rules.
//  5. Aggregation: [Aggregate] buckets items per [RiskCategory].
//
// [Analyzer] runs all five steps for one dataset.
//
// # Missing Data
//
// Malformed or missing cells become safe defaults (0, "Unknown", 1.0 for
// on-time delivery) so a partly garbled export still gets a best-effort
// classification. An empty dataset yields an empty result, not an error.
package inventory
