// Package policy is the declarative capability table: one mapping from route
// pattern to the roles allowed to call it, enforced once by middleware
// instead of ad hoc checks inside each handler.
package policy

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HeaderRole carries the caller's role, injected by the edge after
// authentication. Token validation is out of scope here; the header is
// trusted the same way the identity headers are.
const HeaderRole = "X-User-Role"

type Role string

const (
	RoleGuest          Role = "Guest"
	RoleAssistantAdmin Role = "Assistant Admin"
	RoleSuperAdmin     Role = "Super Admin"
)

// Table maps ServeMux route patterns ("GET /orders") to the roles allowed to
// call them. Patterns missing from the table are open to any caller.
type Table map[string][]Role

// Allows reports whether the role may call the pattern.
func (t Table) Allows(pattern string, role Role) bool {
	allowed, restricted := t[pattern]
	if !restricted {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Guard wraps a routed handler and checks the request's matched pattern
// against the table before it runs. It must wrap the handler registered on
// the mux, not the mux itself: r.Pattern is only set after routing.
// Restricted routes reject callers without a role with 401 and callers with
// an insufficient role with 403.
func Guard(table Table, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, restricted := table[r.Pattern]; restricted {
				role := Role(r.Header.Get(HeaderRole))
				if role == "" {
					writeError(w, http.StatusUnauthorized, "missing role", logger)
					return
				}
				if !table.Allows(r.Pattern, role) {
					logger.Warn("access denied", "pattern", r.Pattern, "role", role)
					writeError(w, http.StatusForbidden, "insufficient role", logger)
					return
				}
			}
			next(w, r)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
