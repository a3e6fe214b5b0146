package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// RequireVerified allows only users whose email has been verified. Must run
// after Authenticate.
func RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "InvalidToken", "authentication required")
			return
		}
		if !u.Verified {
			writeJSONError(w, http.StatusForbidden, "EmailNotVerified",
				"email not verified; request a new link via /v1/auth/resend-verification")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireKYC returns middleware that allows only users at or above the given
// KYC level. An unverified email fails first: verification always outranks
// KYC in the rejection order, so callers get the actionable error.
func RequireKYC(min int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "InvalidToken", "authentication required")
				return
			}
			if !u.Verified {
				writeJSONError(w, http.StatusForbidden, "EmailNotVerified",
					"email not verified; request a new link via /v1/auth/resend-verification")
				return
			}
			if u.KYCLevel < min {
				writeJSONError(w, http.StatusForbidden, "InsufficientKYC",
					fmt.Sprintf("KYC level %d required, current level is %d", min, u.KYCLevel))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns middleware that allows only users whose role matches
// one of the provided role names (e.g. domain.RoleAdmin).
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "InvalidToken", "authentication required")
				return
			}
			for _, role := range allowedRoles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "InsufficientPermissions",
				fmt.Sprintf("role %q is not allowed here (requires one of: %s)", u.Role, strings.Join(allowedRoles, ", ")))
		})
	}
}
