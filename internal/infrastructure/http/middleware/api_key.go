package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderAPIKey carries the shared API key
const HeaderAPIKey = "X-API-Key"

// RequireAPIKey rejects requests that do not present key either in the
// X-API-Key header or as a Bearer token. An empty key disables the check.
func RequireAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if key == "" {
			return next
		}
		return func(c echo.Context) error {
			token := extractKey(c.Request())
			if token == "" {
				return respondError(c, http.StatusUnauthorized, "Missing API key")
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				return respondError(c, http.StatusUnauthorized, "Invalid API key")
			}
			return next(c)
		}
	}
}

// extractKey extracts the API key from the request headers
func extractKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get(HeaderAPIKey)); key != "" {
		return key
	}

	// Expected format: "Bearer <key>"
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{
		"code":    "UNAUTHENTICATED",
		"message": message,
	})
}
