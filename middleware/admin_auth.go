package middleware

import (
	"errors"
	"net/http"

	"transit-dashboard/auth"

	"github.com/rs/zerolog/log"
)

// AdminAuth protects the dashboard API. It accepts an X-Admin-Key checked
// against a bcrypt hash, or a Bearer JWT carrying the is_admin claim.
type AdminAuth struct {
	jwtManager *auth.JWTManager
	keyHash    string
	enabled    bool
}

// NewAdminAuth creates a new admin authentication middleware. jwtManager may be nil.
func NewAdminAuth(jwtManager *auth.JWTManager, keyHash string, enabled bool) *AdminAuth {
	if enabled && jwtManager == nil && keyHash == "" {
		log.Warn().Msg("Admin authentication enabled but neither a JWT secret nor an API key hash is configured - dashboard routes will be inaccessible")
	}
	return &AdminAuth{
		jwtManager: jwtManager,
		keyHash:    keyHash,
		enabled:    enabled,
	}
}

// Protect wraps an HTTP handler with admin authentication
func (a *AdminAuth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled {
			next.ServeHTTP(w, r)
			return
		}

		if a.jwtManager == nil && a.keyHash == "" {
			log.Warn().Str("path", r.URL.Path).Msg("Admin route accessed but no credentials configured")
			writeError(w, http.StatusServiceUnavailable, "Admin authentication not configured")
			return
		}

		if key := r.Header.Get("X-Admin-Key"); key != "" {
			if !auth.CheckAPIKey(a.keyHash, key) {
				log.Warn().
					Str("path", r.URL.Path).
					Str("ip", r.RemoteAddr).
					Msg("Admin route accessed with invalid API key")
				writeError(w, http.StatusForbidden, "Invalid admin API key")
				return
			}
			log.Debug().Str("path", r.URL.Path).Msg("Admin authenticated with API key")
			next.ServeHTTP(w, r.WithContext(withOperator(r.Context(), "api-key")))
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			log.Warn().
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Msg("Admin route accessed without credentials")
			writeError(w, http.StatusUnauthorized, "Missing credentials. Provide X-Admin-Key or Authorization: Bearer <token>")
			return
		}
		if a.jwtManager == nil {
			writeError(w, http.StatusUnauthorized, "Bearer tokens are not accepted")
			return
		}

		claims, err := a.jwtManager.ValidateAdminToken(token)
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Msg("Admin route accessed with rejected token")
			if errors.Is(err, auth.ErrNotAdmin) {
				writeError(w, http.StatusForbidden, "Admin access required")
				return
			}
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		log.Debug().
			Str("path", r.URL.Path).
			Str("operator", claims.Username).
			Msg("Admin authenticated successfully")

		next.ServeHTTP(w, r.WithContext(withOperator(r.Context(), claims.Username)))
	})
}
