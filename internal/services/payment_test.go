package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
)

type fakePaymentProvider struct {
	sessions    map[string]*CheckoutSession
	lastInput   CheckoutInput
	checkoutURL string
}

func (fp *fakePaymentProvider) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	fp.lastInput = in
	return fp.checkoutURL, nil
}

func (fp *fakePaymentProvider) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	s, ok := fp.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %s", sessionID)
	}
	return s, nil
}

func TestPaymentServiceCreateSession_DefaultsAndValidation(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	provider := &fakePaymentProvider{checkoutURL: "https://pay.example/session"}
	svc := NewPaymentService(db, log, provider, userRepo)
	ctx := context.Background()

	if _, err := svc.CreateSession(ctx, CheckoutInput{AmountCents: 999}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
	if _, err := svc.CreateSession(ctx, CheckoutInput{Email: "a@x.com"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-positive amount, got %v", err)
	}

	url, err := svc.CreateSession(ctx, CheckoutInput{Email: " A@X.com ", AmountCents: 999})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if url != provider.checkoutURL {
		t.Fatalf("expected provider url back, got %q", url)
	}
	if provider.lastInput.Email != "a@x.com" {
		t.Fatalf("email should be normalized before the provider call, got %q", provider.lastInput.Email)
	}
	if provider.lastInput.Currency != "usd" || provider.lastInput.Description == "" {
		t.Fatalf("currency and description defaults missing: %+v", provider.lastInput)
	}
}

func TestPaymentServiceCreateSession_NilProvider(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewPaymentService(db, log, nil, repos.NewUserRepo(db, log))

	if _, err := svc.CreateSession(context.Background(), CheckoutInput{Email: "a@x.com", AmountCents: 999}); err == nil {
		t.Fatalf("expected error when no provider is configured")
	}
}

func TestPaymentServiceVerifySession_PaidFlipsPremium(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	users := NewUserService(db, log, userRepo)
	provider := &fakePaymentProvider{sessions: map[string]*CheckoutSession{
		"cs_paid": {ID: "cs_paid", PaymentStatus: "paid", CustomerEmail: "Buyer@X.com", AmountTotal: 999},
	}}
	svc := NewPaymentService(db, log, provider, userRepo)
	ctx := context.Background()

	if _, err := users.SaveOnLogin(ctx, SaveUserInput{Email: "buyer@x.com", Name: "Buyer"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	verification, err := svc.VerifySession(ctx, "cs_paid")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verification.Paid || verification.Email != "buyer@x.com" {
		t.Fatalf("unexpected verification %+v", verification)
	}

	user, err := users.GetByEmail(ctx, "buyer@x.com")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !user.IsPremium {
		t.Fatalf("paid session must flip the premium flag")
	}

	// Verifying the same session again is a no-op, not an error.
	if _, err := svc.VerifySession(ctx, "cs_paid"); err != nil {
		t.Fatalf("repeat verify: %v", err)
	}
}

func TestPaymentServiceVerifySession_UnpaidLeavesUserAlone(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	users := NewUserService(db, log, userRepo)
	provider := &fakePaymentProvider{sessions: map[string]*CheckoutSession{
		"cs_open": {ID: "cs_open", PaymentStatus: "unpaid", CustomerEmail: "buyer@x.com"},
	}}
	svc := NewPaymentService(db, log, provider, userRepo)
	ctx := context.Background()

	if _, err := users.SaveOnLogin(ctx, SaveUserInput{Email: "buyer@x.com"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	verification, err := svc.VerifySession(ctx, "cs_open")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verification.Paid {
		t.Fatalf("unpaid session reported as paid")
	}

	user, err := users.GetByEmail(ctx, "buyer@x.com")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.IsPremium {
		t.Fatalf("unpaid session must not grant premium")
	}
}
