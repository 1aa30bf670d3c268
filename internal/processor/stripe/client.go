// Package stripe implements the processor boundary with the Stripe SDK.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/account"
	"github.com/stripe/stripe-go/v82/accountlink"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
)

// Client talks to Stripe using the platform secret key. Connect-routed
// checkout sessions are created in the connected account's context so the
// account's branding and currency settings apply.
type Client struct {
	webhookSecret string
}

func NewClient(cfg config.Config) *Client {
	stripe.Key = cfg.StripeSecretKey
	return &Client{webhookSecret: cfg.StripeWebhookSecret}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, spec processor.CheckoutSpec) (*processor.CheckoutSession, error) {
	currency := strings.ToLower(strings.TrimSpace(spec.Currency))
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(spec.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(spec.LineItemName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(spec.SuccessURL),
		CancelURL:  stripe.String(spec.CancelURL),
	}
	params.Context = ctx
	for key, value := range spec.Metadata {
		params.AddMetadata(key, value)
	}

	if spec.IsConnect() {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(spec.ApplicationFeeCents),
		}
		params.SetStripeAccount(spec.ConnectedAccountID)
	}

	created, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", processor.ErrSessionFailed, stripeErrorMessage(err))
	}
	return &processor.CheckoutSession{ID: created.ID, URL: created.URL}, nil
}

func (c *Client) GetAccount(ctx context.Context, accountID string) (*processor.Account, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx
	acct, err := account.GetByID(accountID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", processor.ErrAccountFailed, stripeErrorMessage(err))
	}
	return toAccount(acct), nil
}

func (c *Client) CreateAccount(ctx context.Context, email string) (*processor.Account, error) {
	params := &stripe.AccountParams{
		Type: stripe.String(string(stripe.AccountTypeExpress)),
	}
	if email = strings.TrimSpace(email); email != "" {
		params.Email = stripe.String(email)
	}
	params.Context = ctx
	acct, err := account.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", processor.ErrAccountFailed, stripeErrorMessage(err))
	}
	return toAccount(acct), nil
}

func (c *Client) CreateAccountLink(ctx context.Context, accountID, returnURL, refreshURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		ReturnURL:  stripe.String(returnURL),
		RefreshURL: stripe.String(refreshURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx
	link, err := accountlink.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %s", processor.ErrAccountFailed, stripeErrorMessage(err))
	}
	return link.URL, nil
}

// VerifyEvent authenticates the payload against the signature header. Only a
// verified checkout completion carries session details; other event types
// come back with just their type so callers can acknowledge and ignore them.
func (c *Client) VerifyEvent(payload []byte, signatureHeader string) (*processor.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, c.webhookSecret)
	if err != nil {
		return nil, processor.ErrInvalidSignature
	}

	verified := &processor.Event{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if verified.Type != processor.EventTypeCheckoutCompleted {
		return verified, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, processor.ErrMalformedEvent
	}
	verified.SessionID = sess.ID
	verified.AmountCents = sess.AmountTotal
	verified.Metadata = sess.Metadata
	return verified, nil
}

func toAccount(acct *stripe.Account) *processor.Account {
	return &processor.Account{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}
}

func stripeErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return string(stripeErr.Code)
	}
	return err.Error()
}
