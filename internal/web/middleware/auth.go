package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/JonMunkholm/stockrisk/internal/config"
	"github.com/JonMunkholm/stockrisk/internal/logging"
	"github.com/JonMunkholm/stockrisk/internal/metrics"
)

// APIKeyAuth returns middleware that checks the caller's key against the
// configured keys. The key is read from X-API-Key, falling back to the
// Authorization header with or without a "Bearer " prefix.
//
// Missing key: 401. Unknown key: 403. With RequireAPIKey off every request
// passes.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			logger := logging.FromContext(r.Context()).With(
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)

			key := requestAPIKey(r)
			if key == "" {
				logger.Warn("auth: missing API key")
				metrics.RecordRejection("auth_missing")
				WriteError(w, http.StatusUnauthorized, ErrAPIKeyRequired)
				return
			}

			if !isValidAPIKey(key, cfg.APIKeys) {
				logger.Warn("auth: invalid API key")
				metrics.RecordRejection("auth_invalid")
				WriteError(w, http.StatusForbidden, ErrInvalidAPIKey)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requestAPIKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		auth = strings.TrimSpace(auth[7:])
	}
	return auth
}

// isValidAPIKey checks key against every configured key in constant time,
// so timing does not reveal which key (if any) matched.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}
