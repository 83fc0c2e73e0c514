package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/silverharvest/harvest-system/internal/api/metrics"
	"github.com/silverharvest/harvest-system/internal/core/authz"
)

// RBAC admits the request only when the role injected by Auth is allowed to
// perform op. Denials return the gate's domain.ErrForbidden for the central
// error handler to render. Must run after Auth.
func RBAC(gate *authz.Gate, op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(string)
			if err := gate.Check(role, op); err != nil {
				metrics.AuthorizationDecisionsTotal.WithLabelValues(string(op), "deny").Inc()
				return err
			}
			metrics.AuthorizationDecisionsTotal.WithLabelValues(string(op), "allow").Inc()
			return next(c)
		}
	}
}
