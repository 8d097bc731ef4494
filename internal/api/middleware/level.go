package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLevel gates a route on the member's permission level. Higher
// levels are more privileged, so any level at or above min passes.
func RequireLevel(min int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			level, ok := c.Get("level").(int)
			if !ok || level < min {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
