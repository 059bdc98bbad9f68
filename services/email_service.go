package services

import (
	"context"
	"fmt"
	"html"
	"lojastreet_server/lib"
	"lojastreet_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/mitchellh/mapstructure"
	"github.com/resend/resend-go/v3"
	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *ResendMailer) Send(_ context.Context, to []string, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := m.client.Emails.Send(params)
	return err
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *structs.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(_ context.Context, to []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

// noopMailer drops messages when no provider is configured.
type noopMailer struct {
	logger *gecho.Logger
}

func (m noopMailer) Send(_ context.Context, to []string, subject, _ string) error {
	m.logger.Warn("E-mail provider not configured, message dropped", gecho.Field("to", to), gecho.Field("subject", subject))
	return nil
}

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	mailer Mailer
}

// NewEmailService picks Resend when an API key is set, SMTP when a host is
// set, and otherwise drops messages with a warning.
func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	var mailer Mailer
	switch {
	case cfg.Email.ResendApiKey != "":
		mailer = NewResendMailer(cfg.Email.ResendApiKey, cfg.Email.From)
	case cfg.Email.SMTPHost != "":
		mailer = NewSMTPMailer(cfg.Email)
	default:
		mailer = noopMailer{logger: logger}
	}
	return NewEmailServiceWithMailer(logger, cfg, mailer)
}

func NewEmailServiceWithMailer(logger *gecho.Logger, cfg *structs.Config, mailer Mailer) *EmailService {
	return &EmailService{logger: logger, cfg: cfg, mailer: mailer}
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	if err := es.mailer.Send(ctx, to, subject, body); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}
	return nil
}

// SendPaymentApproved notifies the payer and the shop admin about an approved
// payment. Both messages are attempted; the first failure is returned.
func (es *EmailService) SendPaymentApproved(ctx context.Context, payment *structs.MPPayment) error {
	amount := lib.FormatBRL(decimal.NewFromFloat(payment.TransactionAmount))
	meta := decodePaymentMetadata(payment.Metadata)
	name := meta.Name

	var firstErr error
	if payment.Payer.Email != "" {
		body := paymentApprovedTemplate(name, amount, payment.ID)
		if err := es.SendEmail(ctx, []string{payment.Payer.Email}, "Pagamento Aprovado - Loja Street", body); err != nil {
			firstErr = err
		}
	}

	if es.cfg.Email.AdminAddress != "" {
		body := adminPaymentTemplate(name, payment.Payer.Email, meta.Phone, amount, payment.ID)
		if err := es.SendEmail(ctx, []string{es.cfg.Email.AdminAddress}, "Novo Pagamento Aprovado - "+amount, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// paymentMetadata is what checkout stores in the provider metadata.
type paymentMetadata struct {
	Name  string `mapstructure:"name"`
	Phone string `mapstructure:"phone"`
}

// decodePaymentMetadata tolerates missing keys and numbers where strings are
// expected; a phone typed as digits comes back as a JSON number.
func decodePaymentMetadata(metadata map[string]any) paymentMetadata {
	var meta paymentMetadata
	if err := mapstructure.WeakDecode(metadata, &meta); err != nil {
		return paymentMetadata{}
	}
	return meta
}

func paymentApprovedTemplate(name, amount string, paymentID int64) string {
	greeting := "Olá!"
	if name != "" {
		greeting = fmt.Sprintf("Olá, %s!", html.EscapeString(name))
	}

	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head><meta charset="UTF-8"></head>
		<body style="font-family: Arial, sans-serif; color: #111;">
			<h2>%s</h2>
			<p>Recebemos o seu pagamento via PIX no valor de <strong>%s</strong>.</p>
			<p>Número do pagamento: %d</p>
			<p>Obrigado por comprar na Loja Street!</p>
		</body>
		</html>
	`, greeting, amount, paymentID)
}

func adminPaymentTemplate(name, email, phone, amount string, paymentID int64) string {
	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head><meta charset="UTF-8"></head>
		<body style="font-family: Arial, sans-serif; color: #111;">
			<h2>Novo pagamento aprovado</h2>
			<ul>
				<li>Pagamento: %d</li>
				<li>Valor: %s</li>
				<li>Cliente: %s</li>
				<li>E-mail: %s</li>
				<li>Telefone: %s</li>
			</ul>
		</body>
		</html>
	`, paymentID, amount, html.EscapeString(name), html.EscapeString(email), html.EscapeString(phone))
}
