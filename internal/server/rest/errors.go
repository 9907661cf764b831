package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/gin-gonic/gin"
)

var errorTable = []struct {
	err     error
	status  int
	message string
}{
	{common.ErrMissingCredentials, http.StatusBadRequest, "Missing required fields"},
	{common.ErrorAlreadyExists, http.StatusBadRequest, "Username or email already exists"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "Invalid credentials"},
	{common.ErrTokenRequired, http.StatusUnauthorized, "Access token required"},
	{common.ErrSessionNotFound, http.StatusUnauthorized, "Invalid or expired session"},
	{common.ErrInvalidToken, http.StatusForbidden, "Invalid token"},
	{common.ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
	{common.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
}

func statusFor(err error) (int, string) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func messageFor(err error) string {
	_, msg := statusFor(err)
	return msg
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
