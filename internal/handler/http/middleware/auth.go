package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/auth"
	"github.com/peoplemesh/hrms-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose token is missing, invalid, or
// not an access token. It runs after jwtauth.Verifier, which parses
// the token into the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			switch {
			case err != nil:
				response.Unauthorized(w, err.Error())
				return
			case token == nil:
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Refresh tokens carry type "refresh" and must not reach
			// protected routes.
			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
