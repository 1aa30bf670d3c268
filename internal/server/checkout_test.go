package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
)

type stubCheckoutSvc struct {
	resp *checkoutdomain.CreatePaymentResponse
	err  error
}

func (s *stubCheckoutSvc) CreatePayment(context.Context, snowflake.ID, checkoutdomain.CreatePaymentRequest) (*checkoutdomain.CreatePaymentResponse, error) {
	return s.resp, s.err
}

func newCheckoutServer(svc checkoutdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	srv := &Server{
		log:         zap.NewNop(),
		engine:      engine,
		checkoutSvc: svc,
	}
	engine.POST("/api/payments/checkout", srv.CreateCheckout)
	return engine
}

func postCheckout(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payments/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeCheckout(t *testing.T, rec *httptest.ResponseRecorder) checkoutdomain.CreatePaymentResponse {
	t.Helper()
	var resp checkoutdomain.CreatePaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestCheckoutEndpointReturnsSessionURL(t *testing.T) {
	svc := &stubCheckoutSvc{resp: &checkoutdomain.CreatePaymentResponse{
		Success:   true,
		URL:       "https://checkout.test/cs_1",
		SessionID: "cs_1",
	}}
	engine := newCheckoutServer(svc)

	rec := postCheckout(engine, `{"job_id":"`+snowflake.ID(1001).String()+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeCheckout(t, rec)
	if !resp.Success || resp.URL != "https://checkout.test/cs_1" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCheckoutEndpointReturns200OnFailure(t *testing.T) {
	svc := &stubCheckoutSvc{resp: &checkoutdomain.CreatePaymentResponse{
		Success: false,
		Error:   "job_not_found",
	}}
	engine := newCheckoutServer(svc)

	rec := postCheckout(engine, `{"job_id":"`+snowflake.ID(9999).String()+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("application failures still answer 200, got %d", rec.Code)
	}
	resp := decodeCheckout(t, rec)
	if resp.Success || resp.Error != "job_not_found" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCheckoutResponseWireKeys(t *testing.T) {
	svc := &stubCheckoutSvc{resp: &checkoutdomain.CreatePaymentResponse{
		Success:   true,
		URL:       "https://checkout.test/cs_1",
		SessionID: "cs_1",
		PricingInfo: &checkoutdomain.PricingInfo{
			BasePrice:          49.99,
			PlatformFee:        2.75,
			TotalCustomerPays:  52.74,
			FeePercentage:      4.9,
			ConnectAccountUsed: true,
		},
	}}
	engine := newCheckoutServer(svc)

	rec := postCheckout(engine, `{"job_id":"`+snowflake.ID(1001).String()+`"}`)
	body := rec.Body.String()
	if !strings.Contains(body, `"sessionId":"cs_1"`) {
		t.Fatalf("body missing sessionId key: %s", body)
	}
	if !strings.Contains(body, `"connect_used":true`) {
		t.Fatalf("body missing connect_used key: %s", body)
	}
}

func TestCheckoutEndpointRejectsBadBody(t *testing.T) {
	engine := newCheckoutServer(&stubCheckoutSvc{})

	rec := postCheckout(engine, `{not json`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeCheckout(t, rec)
	if resp.Success || resp.Error != "invalid_request" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCheckoutEndpointRejectsBadJobID(t *testing.T) {
	engine := newCheckoutServer(&stubCheckoutSvc{})

	rec := postCheckout(engine, `{"job_id":"not-a-snowflake"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeCheckout(t, rec)
	if resp.Success || resp.Error != "invalid_job_id" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
