package httpx

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/audit"
)

const sessionHeader = "X-Session-Id"

// Provenance records the client address, user agent and session of the
// request for the audit ledger. A session id is generated when the client
// sends none and echoed back in the response.
func Provenance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := r.Header.Get(sessionHeader)
		if session == "" {
			session = uuid.NewString()
		}

		w.Header().Set(sessionHeader, session)

		ctx := audit.WithProvenance(r.Context(), audit.Provenance{
			IPAddress: clientIP(r),
			SessionID: session,
			UserAgent: r.UserAgent(),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers the first X-Forwarded-For hop.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
