package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pavelchamgl/booking/pkg/token"
)

const ContextUserID = "user_id"

type AccessTokenParser interface {
	ParseAccess(tokenStr string) (*token.Claims, error)
}

// JWTAuth rejects requests without a valid "Authorization: Bearer <access>" header.
func JWTAuth(parser AccessTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")
			}
			userID, err := parseUserID(parser, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

// OptionalJWTAuth sets the user id when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalJWTAuth(parser AccessTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearerToken(c); ok {
				if userID, err := parseUserID(parser, raw); err == nil {
					c.Set(ContextUserID, userID)
				}
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID).(uint)
	return id, ok
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func parseUserID(parser AccessTokenParser, raw string) (uint, error) {
	claims, err := parser.ParseAccess(raw)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}
