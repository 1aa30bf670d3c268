package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
)

type createCheckoutRequest struct {
	JobID string `json:"job_id"`
}

// CreateCheckout starts checkout for a job. The endpoint answers 200 for
// every application-level outcome; clients branch on the success flag.
func (s *Server) CreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, checkoutdomain.CreatePaymentResponse{
			Success: false,
			Error:   "invalid_request",
		})
		return
	}

	jobID, err := parseSnowflake(req.JobID)
	if err != nil {
		c.JSON(http.StatusOK, checkoutdomain.CreatePaymentResponse{
			Success: false,
			Error:   "invalid_job_id",
		})
		return
	}

	resp, err := s.checkoutSvc.CreatePayment(c.Request.Context(), companyIDFromGin(c), checkoutdomain.CreatePaymentRequest{
		JobID: jobID,
	})
	if err != nil {
		s.log.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusOK, checkoutdomain.CreatePaymentResponse{
			Success: false,
			Error:   "checkout_session_failed",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
