package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/phrazzld/slidegen-api/internal/api/shared"
)

// IPAllowlist restricts access to a fixed set of client IPs. An empty list
// disables the check entirely. The health endpoint is always reachable so
// platform monitors keep working when the allowlist is misconfigured.
//
// The middleware trusts r.RemoteAddr, so chi's RealIP middleware must run
// before it when the service sits behind a proxy.
func IPAllowlist(allowedIPs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedIPs))
	for _, ip := range allowedIPs {
		if ip != "" {
			allowed[ip] = true
		}
	}

	if len(allowed) > 0 {
		logger.Info("IP allowlist enabled", "allowed_ips", len(allowed))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 || r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := r.RemoteAddr
			if host, _, err := net.SplitHostPort(clientIP); err == nil {
				clientIP = host
			}

			if !allowed[clientIP] {
				logger.Warn("access denied for IP",
					"client_ip", clientIP,
					"path", r.URL.Path,
					"method", r.Method)
				shared.RespondWithError(w, r, http.StatusForbidden,
					"Your IP address is not authorized to access this service")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
