package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/stockrisk/internal/core"
)

var (
	ErrAPIKeyRequired = errors.New("api key required")
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrRateLimited    = errors.New("rate limit exceeded")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// WriteError maps err through core.MapError and writes it as JSON.
func WriteError(w http.ResponseWriter, status int, err error) {
	msg := core.MapError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
