package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	paymentdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
)

// maxWebhookBody caps the raw payload read; processor events are small.
const maxWebhookBody = 1 << 20

// StripeWebhook ingests processor events. Signature and shape problems are
// the sender's fault (400); local persistence problems are ours (500) so the
// processor retries.
func (s *Server) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_payload"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	err = s.paymentSvc.IngestWebhook(c.Request.Context(), payload, signature)
	switch {
	case err == nil, errors.Is(err, paymentdomain.ErrEventAlreadyProcessed):
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, processor.ErrInvalidSignature), errors.Is(err, processor.ErrMalformedEvent):
		s.log.Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing_failed"})
	}
}
