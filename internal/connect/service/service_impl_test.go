package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

type stubProcessor struct {
	account      *processor.Account
	accountErr   error
	created      *processor.Account
	createErr    error
	linkURL      string
	linkErr      error
	linkRequests int
}

func (s *stubProcessor) CreateCheckoutSession(context.Context, processor.CheckoutSpec) (*processor.CheckoutSession, error) {
	return nil, processor.ErrSessionFailed
}

func (s *stubProcessor) GetAccount(context.Context, string) (*processor.Account, error) {
	return s.account, s.accountErr
}

func (s *stubProcessor) CreateAccount(context.Context, string) (*processor.Account, error) {
	return s.created, s.createErr
}

func (s *stubProcessor) CreateAccountLink(context.Context, string, string, string) (string, error) {
	s.linkRequests++
	return s.linkURL, s.linkErr
}

type stubProfiles struct {
	connected  *profiledomain.ConnectedAccount
	setAccount string
	marked     *bool
}

func (s *stubProfiles) GetOrProvision(context.Context, string, string) (*profiledomain.Profile, error) {
	return nil, profiledomain.ErrProfileNotFound
}

func (s *stubProfiles) ConnectedAccount(context.Context, snowflake.ID) (*profiledomain.ConnectedAccount, error) {
	return s.connected, nil
}

func (s *stubProfiles) SetConnectedAccount(_ context.Context, _, accountID string) error {
	s.setAccount = accountID
	return nil
}

func (s *stubProfiles) MarkConnected(_ context.Context, _ string, connected bool) error {
	s.marked = &connected
	return nil
}

func newConnectService(profiles *stubProfiles, proc *stubProcessor) *Service {
	return &Service{
		cfg:       config.Config{AppBaseURL: "https://app.test"},
		log:       zap.NewNop(),
		profiles:  profiles,
		processor: proc,
	}
}

func TestInitiateCreatesAccountAndLink(t *testing.T) {
	profiles := &stubProfiles{}
	proc := &stubProcessor{
		created: &processor.Account{ID: "acct_new"},
		linkURL: "https://connect.test/onboard",
	}
	svc := newConnectService(profiles, proc)

	resp, err := svc.InitiateConnection(context.Background(), snowflake.ID(42), "user_1", "owner@example.com")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if resp.AlreadyConnected {
		t.Fatalf("new tenant must not be already connected")
	}
	if resp.AccountID != "acct_new" || resp.OnboardingURL != "https://connect.test/onboard" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if profiles.setAccount != "acct_new" {
		t.Fatalf("account id not persisted, got %q", profiles.setAccount)
	}
}

func TestInitiateShortCircuitsWhenChargesEnabled(t *testing.T) {
	profiles := &stubProfiles{connected: &profiledomain.ConnectedAccount{AccountID: "acct_done", Marked: true}}
	proc := &stubProcessor{account: &processor.Account{ID: "acct_done", ChargesEnabled: true}}
	svc := newConnectService(profiles, proc)

	resp, err := svc.InitiateConnection(context.Background(), snowflake.ID(42), "user_1", "owner@example.com")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if !resp.AlreadyConnected {
		t.Fatalf("expected already connected")
	}
	if proc.linkRequests != 0 {
		t.Fatalf("no onboarding link needed for connected account")
	}
}

func TestInitiateReissuesLinkForPendingAccount(t *testing.T) {
	profiles := &stubProfiles{connected: &profiledomain.ConnectedAccount{AccountID: "acct_pending"}}
	proc := &stubProcessor{
		account: &processor.Account{ID: "acct_pending", ChargesEnabled: false},
		linkURL: "https://connect.test/resume",
	}
	svc := newConnectService(profiles, proc)

	resp, err := svc.InitiateConnection(context.Background(), snowflake.ID(42), "user_1", "owner@example.com")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if resp.AlreadyConnected {
		t.Fatalf("pending account is not connected")
	}
	if resp.AccountID != "acct_pending" {
		t.Fatalf("must reuse pending account, got %q", resp.AccountID)
	}
	if profiles.setAccount != "" {
		t.Fatalf("must not create a second account")
	}
}

func TestInitiateSurfacesProcessorFailure(t *testing.T) {
	profiles := &stubProfiles{}
	proc := &stubProcessor{createErr: processor.ErrAccountFailed}
	svc := newConnectService(profiles, proc)

	_, err := svc.InitiateConnection(context.Background(), snowflake.ID(42), "user_1", "owner@example.com")
	if err == nil {
		t.Fatalf("expected failure when account creation fails")
	}
}

func TestCheckStatusReconcilesCachedFlag(t *testing.T) {
	profiles := &stubProfiles{connected: &profiledomain.ConnectedAccount{AccountID: "acct_1", Marked: false}}
	proc := &stubProcessor{account: &processor.Account{ID: "acct_1", ChargesEnabled: true, PayoutsEnabled: true}}
	svc := newConnectService(profiles, proc)

	status, err := svc.CheckStatus(context.Background(), snowflake.ID(42), "user_1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Connected || !status.ChargesEnabled || !status.PayoutsEnabled {
		t.Fatalf("unexpected status %+v", status)
	}
	if profiles.marked == nil || !*profiles.marked {
		t.Fatalf("cached flag must be reconciled to true")
	}
}

func TestCheckStatusFallsBackToCacheOnProcessorError(t *testing.T) {
	profiles := &stubProfiles{connected: &profiledomain.ConnectedAccount{AccountID: "acct_1", Marked: true}}
	proc := &stubProcessor{accountErr: errors.New("processor_down")}
	svc := newConnectService(profiles, proc)

	status, err := svc.CheckStatus(context.Background(), snowflake.ID(42), "user_1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Connected {
		t.Fatalf("cached connected flag must hold during outages")
	}
}

func TestCheckStatusNoAccount(t *testing.T) {
	svc := newConnectService(&stubProfiles{}, &stubProcessor{})

	status, err := svc.CheckStatus(context.Background(), snowflake.ID(42), "user_1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Connected || status.AccountID != "" {
		t.Fatalf("expected disconnected status, got %+v", status)
	}
}
