package middleware

import (
	"context"
	"net/http"
	"strings"

	"famnotes/auth"
	"famnotes/db"
	"famnotes/models"

	"github.com/rs/zerolog/log"
)

type contextKey string

const userKey contextKey = "user"

// RequireAuth validates the bearer token and resolves its subject to a user
// row. A token whose user has since been deleted is rejected the same way as
// a bad token.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := db.DB.First(&user, userID).Error; err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, &user)))
	})
}

// UserFrom returns the authenticated user attached by RequireAuth, or nil.
func UserFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// WithUser attaches a user to the request context the way RequireAuth does.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}
