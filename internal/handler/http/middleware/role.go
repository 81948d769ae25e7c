package middleware

import (
	"net/http"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

// AdminOnly requires the ADMIN role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := CurrentUser(r.Context())
		if !ok || !actor.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HROrAdmin requires the HR or ADMIN role
func HROrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := CurrentUser(r.Context())
		if !ok || (!actor.IsAdmin() && !actor.IsHR()) {
			response.HandleError(w, user.ErrHRPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
