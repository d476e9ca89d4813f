package echoapi

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lvillarreal/educrm/core/user"
)

const (
	contextClaimsKey = "claims"
	contextUserKey   = "user"
)

// authMiddleware extracts the bearer token from the Authorization header,
// validates it and attaches the claims to the request context. The three
// failure kinds (missing, expired, malformed) surface distinct 401 bodies.
func authMiddleware(ts *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return errTokenMissing
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if raw == "" {
				return errTokenMissing
			}

			claims, err := ts.Parse(raw)
			if err != nil {
				return err
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

// requireAction enforces the access control policy for the given action.
// The identity is resolved against the store on every request so that a
// deleted account's outstanding token stops working immediately and a role
// change takes effect before the token expires. A denial is a 403, never
// conflated with an authentication failure.
func requireAction(svc *user.Service, action user.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			id, err := claims.UserID()
			if err != nil {
				return errTokenInvalid
			}

			usr, err := svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					return errTokenInvalid
				}
				return err
			}
			if !user.Allowed(usr.Role, action) {
				return errHttpForbidden
			}
			ctx.Set(contextUserKey, usr)
			return next(ctx)
		}
	}
}
