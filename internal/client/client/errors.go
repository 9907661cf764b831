package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/foodorder/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusBadRequest && e.Message == "Username or email already exists":
		return common.ErrorAlreadyExists
	case e.Status == http.StatusBadRequest:
		return common.ErrMissingCredentials
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return common.ErrForbidden
	case e.Status == http.StatusTooManyRequests:
		return common.ErrTooManyAttempts
	case e.Status >= http.StatusInternalServerError:
		return ErrUnavailable
	}
	return nil
}
