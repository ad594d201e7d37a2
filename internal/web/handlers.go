package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/stockrisk/internal/core"
)

const (
	// multipartMemory is how much of an upload is held in memory before
	// spilling to a temp file.
	multipartMemory = 10 << 20

	// multipartOverhead covers boundaries and part headers on top of the
	// file itself.
	multipartOverhead = 1 << 20

	maxReportBody = 2 << 20
)

type healthResponse struct {
	Status           string             `json:"status"`
	Message          string             `json:"message"`
	Version          string             `json:"version"`
	UptimeSeconds    int64              `json:"uptime_seconds"`
	ReportConfigured bool               `json:"reportConfigured"`
	Analyses         core.LimiterStatus `json:"analyses"`
}

// handleHealth reports liveness, build version and analysis slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "online",
		Message:          "Server is running",
		Version:          Version,
		UptimeSeconds:    int64(time.Since(s.started).Seconds()),
		ReportConfigured: s.service.ReportConfigured(),
		Analyses:         s.service.LimiterStatus(),
	})
}

// handleAnalyze runs the risk analysis over an uploaded inventory export.
// The file arrives as the multipart field "file".
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.respondError(w, r, fmt.Errorf("%w: %w", core.ErrFileTooLarge, err))
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %w", errInvalidBody, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", core.ErrNoFile, err))
		return
	}
	defer file.Close()

	analysis, err := s.service.Analyze(withClient(r), header.Filename, file, header.Size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// handleReport synthesizes the management report for a report context
// produced by a previous analysis, or probes the model in diagnostic mode.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBody)

	var req core.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", errInvalidBody, err))
		return
	}

	res, err := s.service.Report(withClient(r), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
