package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/requestdata"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

type PaymentHandler struct {
	log            *logger.Logger
	paymentService services.PaymentService
}

func NewPaymentHandler(log *logger.Logger, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		log:            log.With("handler", "PaymentHandler"),
		paymentService: paymentService,
	}
}

// POST /create-checkout-session
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		AmountCents int64  `json:"amountCents"`
		Currency    string `json:"currency"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid checkout payload", err)
		return
	}

	// The checkout always runs for the verified principal, not for
	// whatever email the body carries.
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.Email != "" {
		body.Email = rd.Email
	}

	url, err := h.paymentService.CreateSession(c.Request.Context(), services.CheckoutInput{
		Email:       body.Email,
		Name:        body.Name,
		AmountCents: body.AmountCents,
		Currency:    body.Currency,
		Description: body.Description,
	})
	if err != nil {
		h.log.Error("Create checkout session failed", "error", err)
		RespondServiceError(c, "Failed to create checkout session", err)
		return
	}
	RespondOK(c, "Checkout session created successfully", gin.H{"url": url})
}

// GET /verify-payment/:sessionId
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		RespondError(c, http.StatusBadRequest, "sessionId is required", nil)
		return
	}

	verification, err := h.paymentService.VerifySession(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error("Verify payment failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "Failed to verify payment", err)
		return
	}
	RespondOK(c, "", gin.H{"payment": verification})
}
