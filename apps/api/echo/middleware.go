package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-lms/core/user"
)

// adminMiddleware only lets through users holding one of the admin roles.
func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		if claims.IsAdmin && user.HasAdminRole(claims.Roles) {
			return next(ctx)
		}
		return errHttpForbidden
	}
}
