package utils

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fscope/fscope-server/cmd/models"
	"github.com/fscope/fscope-server/service/auth"
	"gorm.io/gorm"
)

type contextKey string

const UserKey contextKey = "user"

// GetUserFromContext returns the user resolved by RequireUser for this
// request. Handlers use its ID as the owner of every row they touch.
func GetUserFromContext(r *http.Request) (*models.User, error) {
	user, ok := r.Context().Value(UserKey).(*models.User)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// RequireUser resolves the bearer token to a concrete user before the wrapped
// handler runs. A missing or non-Bearer header, a bad or expired token and a
// subject whose user row no longer exists all produce the same 401 response.
func RequireUser(db *gorm.DB, tokens *auth.TokenService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			var user models.User
			if err := db.First(&user, userID).Error; err != nil {
				RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
