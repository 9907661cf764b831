package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/catalog"
	"github.com/dmitrijs2005/foodorder/internal/common"
	"github.com/dmitrijs2005/foodorder/internal/server/services"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, common.ErrMissingCredentials)
		return
	}

	res, err := s.auth.Login(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	s.setSessionCookie(c, res.Token, int(s.opts.TokenValidity.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"user":      res.User,
		"token":     res.Token,
		"expiresAt": res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		s.abortWithError(c, err)
		return
	}
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (s *Server) verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": identityFrom(c)})
}

func (s *Server) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, common.ErrMissingCredentials)
		return
	}

	if err := s.auth.ChangePassword(c.Request.Context(), identityFrom(c), req.CurrentPassword, req.NewPassword); err != nil {
		s.abortWithError(c, err)
		return
	}

	// Every session of the user is gone, including this one.
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed, please log in again"})
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, common.ErrMissingCredentials)
		return
	}

	u, err := s.auth.CreateUser(c.Request.Context(), identityFrom(c), services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": u})
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.auth.Ping(ctx); err != nil {
		s.logger.Error(ctx, "health check failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "database unreachable",
			"timestamp": now,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "connected", "timestamp": now})
}

func (s *Server) listMenu(c *gin.Context) {
	items, err := s.menu.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "categories": catalog.Categories(items)})
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.AuthCookieName, token, maxAge, "/", "", s.opts.SecureCookie, true)
}
