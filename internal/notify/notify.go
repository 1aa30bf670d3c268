package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// PaymentLinkMessage is the payload dispatched when a payment link is created
// for a job with a notify phone number.
type PaymentLinkMessage struct {
	Phone      string `json:"phone"`
	JobTitle   string `json:"job_title"`
	PaymentURL string `json:"payment_url"`
	AmountUSD  string `json:"amount_usd"`
}

// Notifier dispatches outbound customer notifications. Delivery is best
// effort; callers never fail a payment flow on a notification error.
type Notifier interface {
	SendPaymentLink(ctx context.Context, msg PaymentLinkMessage) error
}

// WebhookNotifier posts messages as JSON to a configured webhook endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewWebhookNotifier(url string, log *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.Named("notify.webhook"),
	}
}

func (n *WebhookNotifier) SendPaymentLink(ctx context.Context, msg PaymentLinkMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify_webhook_status_%d", resp.StatusCode)
	}
	n.log.Info("payment link notification sent", zap.String("job_title", msg.JobTitle))
	return nil
}

// NoopNotifier is used when no webhook endpoint is configured.
type NoopNotifier struct{}

func (NoopNotifier) SendPaymentLink(context.Context, PaymentLinkMessage) error { return nil }
