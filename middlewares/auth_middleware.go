// middlewares/auth_middleware.go
package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/models"
	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

// UserLookup resolves the account a token was issued to.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware requires a valid admin bearer token whose account still
// exists, and stores the caller's id and email on the context as "userID"
// and "email".
func AuthMiddleware(secret string, users UserLookup) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Server misconfigured: JWT_SECRET not set.", nil)
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated.", nil)
			return
		}

		claims, err := utils.ParseJWT(key, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated.", nil)
			return
		}
		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil || id == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated.", nil)
			return
		}

		user, err := users.FindByID(c.Request.Context(), uint(id))
		if err != nil {
			var nf *services.NotFoundError
			if errors.As(err, &nf) {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated.", nil)
				return
			}
			slog.ErrorContext(c.Request.Context(), "admin lookup failed", "user_id", id, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "Something went wrong.", nil)
			return
		}

		c.Set("userID", user.ID)
		c.Set("email", user.Email)
		c.Next()
	}
}
