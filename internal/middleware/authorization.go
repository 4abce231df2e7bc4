package middleware

import (
	"net/http"

	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequireAdmin loads the token's user from the database and lets the request
// through only when the stored role is ADMIN or SUPER_ADMIN. Every failure
// mode answers the same 401 so callers cannot distinguish a bad token from
// an insufficient role.
func RequireAdmin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr, ok := GetUserID(r.Context())
			if !ok {
				logger.Debug("User ID not found in context")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				logger.Debug("Malformed user ID in token", zap.String("user_id", userIDStr))
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Debug("Token user not found", zap.String("user_id", userIDStr))
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !user.IsAdmin() {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("user_id", userIDStr),
					zap.String("role", user.Role),
				)
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
