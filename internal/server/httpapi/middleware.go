package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const callerContextKey = "auth.caller"

// BearerAuth extracts the bearer token from the Authorization header, runs
// it through the gate and stores the resolved caller in the request context.
// The request is judged once; there are no retries and no partial outcomes.
func BearerAuth(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var raw string

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
					return mapError(common.ErrUnauthenticated)
				}
				raw = strings.TrimSpace(parts[1])
			}

			caller, err := gate.Authenticate(raw)
			if err != nil {
				return mapError(err)
			}

			c.Set(callerContextKey, caller)
			return next(c)
		}
	}
}

// CallerFromContext returns the caller stored by BearerAuth.
func CallerFromContext(c echo.Context) (auth.Caller, bool) {
	caller, ok := c.Get(callerContextKey).(auth.Caller)
	return caller, ok
}
