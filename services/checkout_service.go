package services

import (
	"context"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"strings"

	"github.com/MonkyMars/gecho"
)

// PaymentProvider is the part of the payment API the checkout uses.
type PaymentProvider interface {
	ValidateToken() error
	CreatePayment(ctx context.Context, req *structs.MPPaymentRequest) (*structs.MPPayment, error)
	GetPayment(ctx context.Context, id string) (*structs.MPPayment, error)
}

// PaymentNotifier announces approved payments.
type PaymentNotifier interface {
	SendPaymentApproved(ctx context.Context, payment *structs.MPPayment) error
}

type CheckoutService struct {
	logger   *gecho.Logger
	cfg      *structs.PaymentConfig
	payments PaymentProvider
	notifier PaymentNotifier
}

func NewCheckoutService(logger *gecho.Logger, cfg *structs.Config, payments PaymentProvider, notifier PaymentNotifier) *CheckoutService {
	return &CheckoutService{
		logger:   logger,
		cfg:      cfg.Payment,
		payments: payments,
		notifier: notifier,
	}
}

// CreatePix creates a PIX payment and returns the QR code data.
func (cs *CheckoutService) CreatePix(ctx context.Context, req *structs.PixCheckoutRequest) (*structs.PixCheckoutResponse, error) {
	if req == nil || req.Amount <= 0 {
		return nil, lib.NewValidationError("amount", "Valor inválido")
	}
	if err := lib.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := cs.payments.ValidateToken(); err != nil {
		cs.logger.Error("Payment provider token is missing or malformed")
		return nil, err
	}

	payment, err := cs.payments.CreatePayment(ctx, cs.buildPaymentRequest(req))
	if err != nil {
		return nil, err
	}

	tx := payment.PointOfInteraction.TransactionData
	cs.logger.Info("PIX payment created",
		gecho.Field("payment_id", payment.ID),
		gecho.Field("status", payment.Status),
		gecho.Field("has_qr_code", tx.QRCodeBase64 != ""),
	)

	return &structs.PixCheckoutResponse{
		ID:           payment.ID,
		Status:       payment.Status,
		QRCode:       tx.QRCode,
		QRBase64:     tx.QRCodeBase64,
		CopyAndPaste: tx.QRCode,
		Amount:       req.Amount,
	}, nil
}

func (cs *CheckoutService) buildPaymentRequest(req *structs.PixCheckoutRequest) *structs.MPPaymentRequest {
	email := strings.TrimSpace(req.Payer.Email)
	if email == "" {
		email = cs.cfg.DefaultEmail
	}
	firstName, lastName := splitName(req.Payer.Nome)

	items := make([]map[string]any, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, map[string]any{
			"title": item.Title,
			"size":  item.Size,
			"color": item.Color,
			"qty":   item.Qty,
			"price": item.Price,
		})
	}

	return &structs.MPPaymentRequest{
		TransactionAmount: req.Amount,
		Description:       cs.cfg.Description,
		PaymentMethodID:   "pix",
		Payer: structs.MPPayer{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		},
		Metadata: map[string]any{
			"name":  req.Payer.Nome,
			"phone": req.Payer.Telefone,
			"items": items,
		},
	}
}

// splitName splits a full name into first and remaining names, with the
// provider's placeholder values for missing parts.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "Teste", "Usuario"
	case 1:
		return parts[0], "Usuario"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// HandleNotification processes a provider webhook. Failures are logged and
// never returned, the provider only needs an acknowledgement.
func (cs *CheckoutService) HandleNotification(ctx context.Context, n *structs.PaymentNotification) {
	if n == nil {
		return
	}
	cs.logger.Debug("Payment webhook received", gecho.Field("type", n.Type), gecho.Field("action", n.Action))

	if n.Type != "payment" || n.Data.ID == "" {
		return
	}

	payment, err := cs.payments.GetPayment(ctx, string(n.Data.ID))
	if lib.IsValidationError(err) {
		cs.logger.Warn("Ignoring notification with malformed payment id", gecho.Field("payment_id", n.Data.ID))
		return
	}
	if err != nil {
		cs.logger.Error("Failed to fetch notified payment", gecho.Field("error", err), gecho.Field("payment_id", n.Data.ID))
		return
	}

	cs.logger.Info("Payment status received", gecho.Field("payment_id", payment.ID), gecho.Field("status", payment.Status))
	if payment.Status != "approved" {
		return
	}

	if err := cs.notifier.SendPaymentApproved(ctx, payment); err != nil {
		cs.logger.Error("Failed to send payment e-mails", gecho.Field("error", err), gecho.Field("payment_id", payment.ID))
	}
}
