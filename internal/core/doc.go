// Package core runs inventory analyses and report requests on behalf of the
// transport layer.
//
// It owns everything around the pure pipeline in package inventory: the
// concurrency limit, per-request timeouts, decoding, metrics, and the
// mapping of technical errors to user messages. It can be driven by the
// HTTP handlers in package web or by the analyze command.
//
// # Analysis
//
// [Service.Analyze] takes an uploaded file, decodes it with package decode,
// runs the analyzer and returns an [Analysis]. The flow is:
//
//  1. Reject files over the size limit or with an unknown extension
//  2. Wait for a slot in the [AnalysisLimiter]
//  3. Decode and analyze under the analysis timeout
//  4. Record metrics and build the report context for the client
//
// # Reports
//
// [Service.Report] forwards a report context to the configured
// [Synthesizer]. A server without a model key still analyzes files; only
// report requests fail, with report.ErrNotConfigured.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - FILE001-FILE006: upload problems (size, format, empty)
//   - ANL001-ANL002: analysis capacity and timeouts
//   - RPT001-RPT005: report configuration and model failures
//   - AUTH001-AUTH002, RATE001, REQ001-REQ002: request gatekeeping
//   - ERR000: anything else
package core
