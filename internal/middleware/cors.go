package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS echoes the request origin back only when it is in allowedOrigins and
// permits credentialed requests. Preflight requests are answered with 200
// and an empty body.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin != "" && allowed[origin] {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
			}

			h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
			h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
			h.Set(echo.HeaderAccessControlAllowCredentials, "true")

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
