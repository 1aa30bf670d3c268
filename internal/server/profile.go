package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's profile as loaded by the auth middleware.
func (s *Server) GetProfile(c *gin.Context) {
	profile := s.currentProfile(c)
	if profile == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}
