package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/silverharvest/harvest-system/internal/api/middleware"
)

// ctxClaims extracts the identity injected by the Auth middleware. Both values
// must be present; their absence means the route was mounted without Auth.
func ctxClaims(c echo.Context) (subject, role string, err error) {
	subject, _ = c.Get(middleware.SubjectKey).(string)
	role, _ = c.Get(middleware.RoleKey).(string)
	if subject == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subject, role, nil
}
