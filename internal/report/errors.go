package report

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured  = errors.New("report service not configured")
	ErrEmptyResponse  = errors.New("empty response from model")
	ErrParseResponse  = errors.New("failed to parse model response")
	ErrAuthentication = errors.New("api key invalid or quota exceeded")
	ErrRateLimited    = errors.New("model rate limited")
)

// classifyError maps a go-openai failure onto the package sentinels,
// keeping the original error in the chain.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return fmt.Errorf("report synthesis failed: %w", err)
}
