package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
)

const paymentStatusPaid = "paid"

type PaymentVerification struct {
	SessionID     string `json:"sessionId"`
	Email         string `json:"email"`
	PaymentStatus string `json:"paymentStatus"`
	Paid          bool   `json:"paid"`
}

type PaymentService interface {
	CreateSession(ctx context.Context, in CheckoutInput) (string, error)
	VerifySession(ctx context.Context, sessionID string) (*PaymentVerification, error)
}

type paymentService struct {
	db       *gorm.DB
	log      *logger.Logger
	provider PaymentProvider
	userRepo repos.UserRepo
}

func NewPaymentService(db *gorm.DB, log *logger.Logger, provider PaymentProvider, userRepo repos.UserRepo) PaymentService {
	serviceLog := log.With("service", "PaymentService")
	return &paymentService{db: db, log: serviceLog, provider: provider, userRepo: userRepo}
}

func (ps *paymentService) CreateSession(ctx context.Context, in CheckoutInput) (string, error) {
	if ps.provider == nil {
		return "", fmt.Errorf("payment provider not configured")
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if in.AmountCents <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.Currency == "" {
		in.Currency = "usd"
	}
	if in.Description == "" {
		in.Description = "Digital Life Lessons premium access"
	}

	url, err := ps.provider.CreateCheckoutSession(ctx, in)
	if err != nil {
		ps.log.Error("CreateSession failed", "error", err, "email", in.Email)
		return "", err
	}
	return url, nil
}

// VerifySession fetches the checkout session and, when the processor
// reports it paid, flips the matching user's premium flag. Repeat
// verification re-applies the same target value, so the call stays
// idempotent.
func (ps *paymentService) VerifySession(ctx context.Context, sessionID string) (*PaymentVerification, error) {
	if ps.provider == nil {
		return nil, fmt.Errorf("payment provider not configured")
	}

	checkout, err := ps.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	verification := &PaymentVerification{
		SessionID:     checkout.ID,
		Email:         strings.ToLower(checkout.CustomerEmail),
		PaymentStatus: checkout.PaymentStatus,
		Paid:          checkout.PaymentStatus == paymentStatusPaid,
	}
	if !verification.Paid {
		return verification, nil
	}

	rows, err := ps.userRepo.SetPremiumByEmail(ctx, nil, verification.Email, true)
	if err != nil {
		return nil, fmt.Errorf("error updating premium flag: %w", err)
	}
	if rows == 0 {
		ps.log.Warn("Paid session has no matching user", "session_id", checkout.ID, "email", verification.Email)
	}
	return verification, nil
}
