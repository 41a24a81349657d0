package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	UserEmailHeader = "X-User-Email"
	userKey         = "user"
)

// IdentityMiddleware resolves the X-User-Email header to a stored user. Requests without a
// known user are rejected with 401.
func IdentityMiddleware(authService ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		email := strings.TrimSpace(c.GetHeader(UserEmailHeader))
		if email == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingIdentity, lang),
			)
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(
					http.StatusUnauthorized,
					apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnknownUser, lang),
				)
				return
			}

			zap.L().Error("failed to resolve user", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailResolveUser, lang),
			)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// GetUser returns the user set by IdentityMiddleware.
func GetUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}
