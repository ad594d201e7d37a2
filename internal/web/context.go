package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/stockrisk/internal/core"
)

// withClient adds the client IP and User-Agent to the request context for
// service-side logging. RemoteAddr is already resolved by TrustedRealIP.
func withClient(r *http.Request) context.Context {
	return core.ContextWithClient(r.Context(), r.RemoteAddr, r.UserAgent())
}
