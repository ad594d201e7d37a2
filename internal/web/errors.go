package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via core.MapError to a user-facing message and code
//  4. The code picks the HTTP status
//  5. Technical error + request ID are logged; the client gets the JSON body

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/stockrisk/internal/core"
	"github.com/JonMunkholm/stockrisk/internal/logging"
	"github.com/JonMunkholm/stockrisk/internal/web/middleware"
)

var errInvalidBody = errors.New("invalid request body")

// statusByCode maps core.MapError codes to HTTP statuses. Unlisted codes
// are 500.
var statusByCode = map[string]int{
	"FILE001": http.StatusRequestEntityTooLarge,
	"FILE002": http.StatusBadRequest,
	"FILE003": http.StatusBadRequest,
	"FILE004": http.StatusBadRequest,
	"FILE005": http.StatusUnprocessableEntity,
	"FILE006": http.StatusUnsupportedMediaType,
	"ANL001":  http.StatusServiceUnavailable,
	"ANL002":  http.StatusGatewayTimeout,
	"RPT001":  http.StatusServiceUnavailable,
	"RPT002":  http.StatusBadRequest,
	"RPT003":  http.StatusBadGateway,
	"RPT004":  http.StatusServiceUnavailable,
	"RPT005":  http.StatusBadGateway,
	"AUTH001": http.StatusUnauthorized,
	"AUTH002": http.StatusForbidden,
	"RATE001": http.StatusTooManyRequests,
	"REQ001":  http.StatusBadRequest,
	"REQ002":  http.StatusRequestTimeout,
}

func statusFor(err error) int {
	if status, ok := statusByCode[core.MapError(err).Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError logs the technical error and writes the user-facing body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := logging.FromContext(r.Context()).With(
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", core.MapError(err).Code,
	)
	if status >= http.StatusInternalServerError {
		logger.Error("request error")
	} else {
		logger.Warn("request error")
	}

	middleware.WriteError(w, status, err)
}
