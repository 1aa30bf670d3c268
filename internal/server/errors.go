package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
	connectdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/connect/domain"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

var (
	ErrUnauthorized = &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "authentication required"}
	ErrForbidden    = &apiError{Status: http.StatusForbidden, Code: "forbidden", Message: "access denied"}
	ErrNotFound     = &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
)

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "request body is invalid"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError translates domain errors into HTTP responses. Unknown
// errors become opaque 500s so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	message := "something went wrong"

	switch {
	case errors.Is(err, jobdomain.ErrJobNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, receiptdomain.ErrReceiptNotFound),
		errors.Is(err, profiledomain.ErrProfileNotFound):
		status = http.StatusNotFound
		code = err.Error()
		message = "resource not found"
	case errors.Is(err, jobdomain.ErrInvalidJobID),
		errors.Is(err, jobdomain.ErrInvalidTitle),
		errors.Is(err, jobdomain.ErrInvalidPrice),
		errors.Is(err, jobdomain.ErrInvalidStatus),
		errors.Is(err, jobdomain.ErrInvalidFrequency),
		errors.Is(err, jobdomain.ErrInvalidClient),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, clientdomain.ErrInvalidEmail),
		errors.Is(err, clientdomain.ErrInvalidID),
		errors.Is(err, receiptdomain.ErrInvalidReceipt),
		errors.Is(err, checkoutdomain.ErrAmountBelowMinimum),
		errors.Is(err, profiledomain.ErrInvalidUser):
		status = http.StatusBadRequest
		code = err.Error()
		message = "request validation failed"
	case errors.Is(err, connectdomain.ErrConnectionFailed):
		status = http.StatusBadGateway
		code = err.Error()
		message = "payment processor unavailable"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		Status:  status,
		Code:    code,
		Message: message,
	}})
}
