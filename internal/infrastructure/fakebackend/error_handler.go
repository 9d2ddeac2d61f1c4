package fakebackend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorResponse mirrors the backend's error body: {"message": "..."}.
type errorResponse struct {
	Message string `json:"message"`
}

var (
	errUserExists         = errors.New("user already exists")
	errInvalidCredentials = errors.New("invalid credentials")
	errNotFound           = errors.New("collection not found")
	errForbidden          = errors.New("access forbidden")
)

// httpErrorHandler renders every error with the backend's JSON envelope.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := resolveError(err)
	_ = c.JSON(code, errorResponse{Message: msg})
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, errUserExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
