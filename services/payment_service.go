package services

import (
	"context"
	"fmt"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"net/url"
	"strconv"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/guonaihong/gout"
)

const minProviderTokenLength = 50

// PaymentService talks to the Mercado Pago payments API.
type PaymentService struct {
	logger *gecho.Logger
	cfg    *structs.PaymentConfig
}

func NewPaymentService(logger *gecho.Logger, cfg *structs.Config) *PaymentService {
	return &PaymentService{logger: logger, cfg: cfg.Payment}
}

// TokenStatus describes the configured access token without revealing it.
type TokenStatus struct {
	Configured bool   `json:"configured"`
	Valid      bool   `json:"valid"`
	Mode       string `json:"mode,omitempty"` // test or production
	Length     int    `json:"length"`
	Masked     string `json:"masked,omitempty"`
}

func (ps *PaymentService) TokenStatus() TokenStatus {
	token := ps.cfg.AccessToken
	status := TokenStatus{
		Configured: token != "",
		Valid:      ps.ValidateToken() == nil,
		Length:     len(token),
	}
	switch {
	case strings.HasPrefix(token, "TEST-"):
		status.Mode = "test"
	case strings.HasPrefix(token, "APP_USR-"):
		status.Mode = "production"
	}
	if token != "" {
		status.Masked = lib.MaskSecret(token)
	}
	return status
}

// ValidateToken reports ErrPaymentNotConfigured unless the access token looks
// like a Mercado Pago credential.
func (ps *PaymentService) ValidateToken() error {
	token := ps.cfg.AccessToken
	if len(token) < minProviderTokenLength {
		return lib.ErrPaymentNotConfigured
	}
	if !strings.HasPrefix(token, "TEST-") && !strings.HasPrefix(token, "APP_USR-") {
		return lib.ErrPaymentNotConfigured
	}
	return nil
}

// CreatePayment posts a new payment. Every call carries a fresh idempotency key.
func (ps *PaymentService) CreatePayment(ctx context.Context, req *structs.MPPaymentRequest) (*structs.MPPayment, error) {
	if err := ps.ValidateToken(); err != nil {
		return nil, err
	}

	var payment structs.MPPayment
	var code int

	err := gout.POST(ps.endpoint("/v1/payments")).
		WithContext(ctx).
		SetHeader(gout.H{
			"Authorization":     "Bearer " + ps.cfg.AccessToken,
			"X-Idempotency-Key": uuid.NewString(),
		}).
		SetJSON(req).
		BindJSON(&payment).
		Code(&code).
		SetTimeout(ps.cfg.Timeout).
		Do()
	if err != nil {
		ps.logger.Error("Payment provider request failed", gecho.Field("error", err))
		return nil, fmt.Errorf("%w: %w", lib.ErrPaymentProvider, err)
	}

	if err := checkProviderStatus(code, &payment); err != nil {
		ps.logger.Error("Payment provider rejected payment",
			gecho.Field("status", code),
			gecho.Field("message", payment.Message),
		)
		return nil, err
	}

	return &payment, nil
}

// GetPayment fetches a payment by id. Provider ids are positive decimal
// integers; anything else is rejected before a request is made.
func (ps *PaymentService) GetPayment(ctx context.Context, id string) (*structs.MPPayment, error) {
	if n, err := strconv.ParseInt(id, 10, 64); err != nil || n <= 0 {
		return nil, lib.NewValidationError("id", "must be a numeric payment id")
	}
	if err := ps.ValidateToken(); err != nil {
		return nil, err
	}

	var payment structs.MPPayment
	var code int

	err := gout.GET(ps.endpoint("/v1/payments/"+url.PathEscape(id))).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + ps.cfg.AccessToken}).
		BindJSON(&payment).
		Code(&code).
		SetTimeout(ps.cfg.Timeout).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lib.ErrPaymentProvider, err)
	}

	if err := checkProviderStatus(code, &payment); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (ps *PaymentService) endpoint(path string) string {
	return strings.TrimRight(ps.cfg.BaseURL, "/") + path
}

func checkProviderStatus(code int, payment *structs.MPPayment) error {
	if code >= 200 && code < 300 {
		return nil
	}
	message := payment.Message
	if message == "" {
		message = payment.Error
	}
	return fmt.Errorf("%w: status %d: %s", lib.ErrPaymentProvider, code, message)
}
