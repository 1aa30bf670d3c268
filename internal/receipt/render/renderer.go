package render

import "time"

// RenderInput is the deterministic input used for receipt rendering.
type RenderInput struct {
	CompanyName string
	JobTitle    string
	ClientName  string
	ClientEmail string

	ReceiptNumber string
	// JobReference is the short job id fragment printed on the document.
	JobReference string
	// SessionID is the processor's checkout session identifier.
	SessionID string
	PaidAt    time.Time

	BaseAmountCents int64
	FeeAmountCents  int64
	PaidAmountCents int64
	Currency        string
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
