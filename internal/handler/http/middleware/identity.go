package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/auth"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
	"github.com/peopleops-io/hrms-backend-go/internal/handler/http/response"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// LoadUser resolves the token's user_id claim against the directory and puts
// the full user on the request context. Role and position checks downstream
// read this record rather than the claims, so a role change or a disabled
// account takes effect immediately instead of at token expiry.
func LoadUser(userRepo user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			found, err := userRepo.GetByID(r.Context(), userID)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !found.Enabled {
				response.HandleError(w, auth.ErrAccountDisabled)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, found)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// CurrentUser returns the user loaded by LoadUser.
func CurrentUser(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(currentUserKey).(user.User)
	return u, ok
}
