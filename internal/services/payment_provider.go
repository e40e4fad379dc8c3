package services

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/utils"
)

type CheckoutInput struct {
	Email       string
	Name        string
	AmountCents int64
	Currency    string
	Description string
}

type CheckoutSession struct {
	ID            string
	PaymentStatus string
	CustomerEmail string
	AmountTotal   int64
}

// PaymentProvider wraps the hosted checkout flow of the payment
// processor: create a session, fetch a session back by id.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error)
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type stripeProvider struct {
	log        *logger.Logger
	successURL string
	cancelURL  string
}

func NewStripeProvider(log *logger.Logger) (PaymentProvider, error) {
	providerLog := log.With("service", "StripeProvider")

	secretKey := utils.GetEnv("STRIPE_SECRET_KEY", "", log)
	if secretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	stripe.Key = secretKey

	clientOrigin := utils.GetEnv("CLIENT_ORIGIN", "http://localhost:5173", log)
	successURL := utils.GetEnv("PAYMENT_SUCCESS_URL", clientOrigin+"/payment-success", log)
	cancelURL := utils.GetEnv("PAYMENT_CANCEL_URL", clientOrigin+"/payment-cancelled", log)

	return &stripeProvider{log: providerLog, successURL: successURL, cancelURL: cancelURL}, nil
}

func (sp *stripeProvider) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.Email),
		SuccessURL:    stripe.String(sp.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(sp.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(in.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("error creating checkout session: %w", err)
	}
	return s.URL, nil
}

func (sp *stripeProvider) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("error fetching checkout session: %w", err)
	}

	email := s.CustomerEmail
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		email = s.CustomerDetails.Email
	}
	return &CheckoutSession{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		CustomerEmail: email,
		AmountTotal:   s.AmountTotal,
	}, nil
}
