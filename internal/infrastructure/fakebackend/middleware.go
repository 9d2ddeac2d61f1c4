package fakebackend

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const ctxUserID = "user_id"

// auth validates the HS256 bearer token and injects the user id into context.
func (s *Server) auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret(), nil
		})
		if err != nil || !tkn.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		userID, _ := claims["id"].(string)
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
		}
		c.Set(ctxUserID, userID)
		return next(c)
	}
}

// injectFailures answers with a canned status for paths registered via Fail.
func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.RLock()
		status, ok := s.failures[c.Request().URL.Path]
		s.mu.RUnlock()
		if ok {
			return echo.NewHTTPError(status, http.StatusText(status))
		}
		return next(c)
	}
}
