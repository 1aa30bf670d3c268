package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetReceipt serves the frozen receipt document as HTML.
func (s *Server) GetReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		AbortWithError(c, newValidationError("id", "invalid_receipt_id", "invalid receipt id"))
		return
	}

	receipt, err := s.receiptSvc.GetByID(c.Request.Context(), companyIDFromGin(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(receipt.HTML))
}
