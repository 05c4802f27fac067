package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/labstack/echo/v4"
)

// mapError converts a core error into an appropriate echo.HTTPError.
// Every outcome keeps its own status so callers can tell expired tokens,
// missing tokens and policy denials apart; nothing internal leaks into the
// message.
func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, common.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, "token expired")

	case errors.Is(err, common.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")

	case errors.Is(err, common.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "not authorized to perform this action")

	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")

	case errors.Is(err, common.ErrEmailExists):
		return echo.NewHTTPError(http.StatusConflict, "email already exists")

	case errors.Is(err, common.ErrPasswordTooShort):
		return echo.NewHTTPError(http.StatusBadRequest, "password too short")

	case errors.Is(err, common.ErrorValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
