package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/stockrisk/internal/decode"
	"github.com/JonMunkholm/stockrisk/internal/inventory"
	"github.com/JonMunkholm/stockrisk/internal/logging"
	"github.com/JonMunkholm/stockrisk/internal/metrics"
	"github.com/JonMunkholm/stockrisk/internal/report"
)

var (
	ErrNoFile               = errors.New("no file provided")
	ErrFileTooLarge         = errors.New("file too large")
	ErrNoUsableData         = errors.New("no usable data: empty file")
	ErrAnalysisTimeout      = errors.New("analysis timed out")
	ErrReportContextMissing = errors.New("report context missing")
)

const (
	DefaultMaxFileSize     = 50 << 20
	DefaultAnalysisTimeout = 2 * time.Minute
	DefaultReportTimeout   = 2 * time.Minute
)

// Config tunes the service. Zero values use the defaults.
type Config struct {
	MaxFileSize     int64
	MaxConcurrent   int
	MaxWaitTime     time.Duration
	AnalysisTimeout time.Duration
	ReportTimeout   time.Duration
	CriticalLimit   int
}

func (c Config) withDefaults() Config {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.AnalysisTimeout <= 0 {
		c.AnalysisTimeout = DefaultAnalysisTimeout
	}
	if c.ReportTimeout <= 0 {
		c.ReportTimeout = DefaultReportTimeout
	}
	if c.CriticalLimit <= 0 {
		c.CriticalLimit = report.DefaultCriticalLimit
	}
	return c
}

// Synthesizer writes reports. *report.Client implements it.
type Synthesizer interface {
	Synthesize(ctx context.Context, rc report.Context) (report.Result, error)
	Diagnose(ctx context.Context) (report.Result, error)
}

// Analysis is the outcome of one upload.
type Analysis struct {
	ID            string                       `json:"id"`
	FileName      string                       `json:"fileName"`
	Format        decode.Format                `json:"format"`
	DurationMs    int64                        `json:"durationMs"`
	Result        inventory.AggregatedAnalysis `json:"result"`
	ReportContext report.Context               `json:"reportContext"`
}

// ReportRequest asks for a report on a previously analyzed dataset.
// DiagnosticMode only probes the model and ignores Context.
type ReportRequest struct {
	Context        *report.Context `json:"context"`
	DiagnosticMode bool            `json:"diagnosticMode"`
}

// Service provides the analysis and report operations.
type Service struct {
	cfg      Config
	analyzer *inventory.Analyzer
	limiter  *AnalysisLimiter
	reporter Synthesizer
	logger   *slog.Logger
}

// NewService wires a service. reporter may be nil, in which case Report
// returns report.ErrNotConfigured.
func NewService(cfg Config, analyzer *inventory.Analyzer, reporter Synthesizer, logger *slog.Logger) *Service {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.Discard()
	}
	if analyzer == nil {
		analyzer = inventory.DefaultAnalyzer(logger)
	}
	return &Service{
		cfg:      cfg,
		analyzer: analyzer,
		limiter:  NewAnalysisLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		reporter: reporter,
		logger:   logger,
	}
}

// MaxFileSize returns the upload size limit in bytes.
func (s *Service) MaxFileSize() int64 { return s.cfg.MaxFileSize }

// ReportConfigured reports whether a model is available for Report.
func (s *Service) ReportConfigured() bool { return s.reporter != nil }

// LimiterStatus returns the current analysis slot usage.
func (s *Service) LimiterStatus() LimiterStatus { return s.limiter.Status() }

// WaitForAnalyses blocks until running analyses finish or ctx ends.
func (s *Service) WaitForAnalyses(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

type analyzeResult struct {
	analysis inventory.AggregatedAnalysis
	err      error
}

// Analyze decodes and analyzes one uploaded file. size is the declared
// length, or -1 when unknown; the reader is capped at the size limit
// either way.
func (s *Service) Analyze(ctx context.Context, fileName string, r io.Reader, size int64) (*Analysis, error) {
	if r == nil {
		return nil, ErrNoFile
	}
	if size > s.cfg.MaxFileSize {
		metrics.RecordRejection("file_too_large")
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, s.cfg.MaxFileSize)
	}
	format, err := decode.FormatOf(fileName)
	if err != nil {
		metrics.RecordRejection("unsupported_format")
		return nil, err
	}

	id := uuid.New().String()
	logger := logging.With(ctx, s.logger).With(
		"analysis_id", id,
		"file", fileName,
		"format", format,
		"client_ip", ClientIPFromContext(ctx),
	)

	if err := s.limiter.Acquire(ctx); err != nil {
		if errors.Is(err, ErrTooManyAnalyses) {
			metrics.RecordRejection("busy")
			logger.Warn("analysis rejected: no free slot", "status", s.limiter.Status())
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.AnalysisTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("analysis started", "size", size)

	// Decoding is not cancellable, so it runs apart from the request and
	// keeps its slot until it really finishes.
	done := make(chan analyzeResult, 1)
	go func() {
		defer s.limiter.Release()
		records, err := decode.Decode(fileName, &cappedReader{r: r, remaining: s.cfg.MaxFileSize})
		if err != nil {
			done <- analyzeResult{err: err}
			return
		}
		if len(records) == 0 {
			done <- analyzeResult{err: ErrNoUsableData}
			return
		}
		done <- analyzeResult{analysis: s.analyzer.Analyze(records)}
	}()

	var res analyzeResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
		if errors.Is(res.err, context.DeadlineExceeded) {
			res.err = fmt.Errorf("%w: %w", ErrAnalysisTimeout, res.err)
		}
	}

	elapsed := time.Since(start)
	if res.err != nil {
		metrics.RecordAnalysis(string(format), "error", elapsed, nil)
		logger.Warn("analysis failed", "error", res.err, "duration_ms", elapsed.Milliseconds())
		return nil, res.err
	}

	metrics.RecordAnalysis(string(format), "success", elapsed, &res.analysis)
	logger.Info("analysis finished",
		"items", res.analysis.TotalItems,
		"duration_ms", elapsed.Milliseconds())

	return &Analysis{
		ID:            id,
		FileName:      fileName,
		Format:        format,
		DurationMs:    elapsed.Milliseconds(),
		Result:        res.analysis,
		ReportContext: report.BuildContext(res.analysis, s.cfg.CriticalLimit),
	}, nil
}

// Report synthesizes a management report, or runs the connectivity probe
// when req.DiagnosticMode is set.
func (s *Service) Report(ctx context.Context, req ReportRequest) (report.Result, error) {
	mode := "full"
	if req.DiagnosticMode {
		mode = "diagnostic"
	}

	if s.reporter == nil {
		metrics.RecordReport(mode, "not_configured", 0)
		return report.Result{}, report.ErrNotConfigured
	}
	if !req.DiagnosticMode && req.Context == nil {
		metrics.RecordReport(mode, "bad_request", 0)
		return report.Result{}, ErrReportContextMissing
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReportTimeout)
	defer cancel()

	logger := logging.With(ctx, s.logger).With("mode", mode, "client_ip", ClientIPFromContext(ctx))
	start := time.Now()

	var (
		res report.Result
		err error
	)
	if req.DiagnosticMode {
		res, err = s.reporter.Diagnose(ctx)
	} else {
		res, err = s.reporter.Synthesize(ctx, *req.Context)
	}

	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordReport(mode, "error", elapsed)
		logger.Error("report failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return report.Result{}, err
	}

	metrics.RecordReport(mode, "success", elapsed)
	logger.Info("report finished", "duration_ms", elapsed.Milliseconds())
	return res, nil
}

// cappedReader fails with ErrFileTooLarge once more than remaining bytes
// have been read.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrFileTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}
