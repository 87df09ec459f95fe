package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/pkg/logging"
	loggingmw "github.com/dietcoach/backend/pkg/middleware/logging"
	"github.com/dietcoach/backend/pkg/tokens"
)

const (
	ctxUser   = "user"
	ctxClaims = "claims"
)

// RequireAuth resolves the bearer token to a user and stores both the user
// and the token claims on the context.
func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			raw, err := tokens.FromAuthorizationHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				logging.FromContext(ctx).Warn("auth_failed", "status", 401, "reason", "header", "error", err)
				return err
			}
			user, claims, err := auth.VerifySession(ctx, raw)
			if err != nil {
				logging.FromContext(ctx).Warn("auth_failed", "reason", "verify", "error", err)
				return err
			}

			c.Set(ctxUser, user)
			c.Set(ctxClaims, claims)
			c.Set(loggingmw.UserIDKey, user.ID)
			return next(c)
		}
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(role string) echo.MiddlewareFunc {
	msg := "Access denied"
	if role == models.RoleAdmin {
		msg = "Admin access required"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := currentUser(c)
			if u == nil || u.RoleName() != role {
				return service.NewError(service.ErrForbidden, msg)
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *models.User {
	u, _ := c.Get(ctxUser).(*models.User)
	return u
}

func currentClaims(c echo.Context) tokens.Claims {
	cl, _ := c.Get(ctxClaims).(tokens.Claims)
	return cl
}
