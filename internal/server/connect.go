package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InitiateConnect starts or resumes payment account onboarding for the
// caller's company.
func (s *Server) InitiateConnect(c *gin.Context) {
	profile := s.currentProfile(c)
	if profile == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.connectSvc.InitiateConnection(c.Request.Context(), companyIDFromGin(c), profile.UserID, profile.Email)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if resp.AlreadyConnected {
		c.JSON(http.StatusOK, gin.H{
			"success":           false,
			"already_connected": true,
			"url":               resp.OnboardingURL,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"url":        resp.OnboardingURL,
		"account_id": resp.AccountID,
	})
}

// ConnectStatus reports the live onboarding state of the company's account.
func (s *Server) ConnectStatus(c *gin.Context) {
	profile := s.currentProfile(c)
	if profile == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	status, err := s.connectSvc.CheckStatus(c.Request.Context(), companyIDFromGin(c), profile.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := gin.H{
		"success":         true,
		"connected":       status.Connected,
		"charges_enabled": status.ChargesEnabled,
		"payouts_enabled": status.PayoutsEnabled,
	}
	if status.AccountID != "" {
		out["account_id"] = status.AccountID
	}
	c.JSON(http.StatusOK, out)
}
