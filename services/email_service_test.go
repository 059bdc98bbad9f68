package services

import (
	"context"
	"lojastreet_server/structs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type recordingMailer struct {
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to []string, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// TestSendPaymentApproved verifies the payer and the admin are both notified.
func TestSendPaymentApproved(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewEmailServiceWithMailer(newTestLogger(), newTestConfig(), mailer)

	err := svc.SendPaymentApproved(context.Background(), &structs.MPPayment{
		ID:                42,
		Status:            "approved",
		TransactionAmount: 1234.5,
		Payer:             structs.MPPayer{Email: "cliente@example.com"},
		Metadata:          map[string]any{"name": "Ana <b>", "phone": "11999999999"},
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)

	payer := mailer.sent[0]
	assert.Equal(t, []string{"cliente@example.com"}, payer.to)
	assert.Equal(t, "Pagamento Aprovado - Loja Street", payer.subject)
	assert.Contains(t, payer.body, "R$ 1.234,50")
	assert.Contains(t, payer.body, "Ana &lt;b&gt;")

	admin := mailer.sent[1]
	assert.Equal(t, []string{"owner@lojastreet.com"}, admin.to)
	assert.Equal(t, "Novo Pagamento Aprovado - R$ 1.234,50", admin.subject)
}

func TestSendPaymentApproved_NoRecipients(t *testing.T) {
	mailer := &recordingMailer{}
	cfg := newTestConfig()
	cfg.Email.AdminAddress = ""
	svc := NewEmailServiceWithMailer(newTestLogger(), cfg, mailer)

	require.NoError(t, svc.SendPaymentApproved(context.Background(), &structs.MPPayment{TransactionAmount: 10}))
	assert.Empty(t, mailer.sent)
}

func TestDecodePaymentMetadata(t *testing.T) {
	meta := decodePaymentMetadata(map[string]any{
		"name":  "Ana Souza",
		"phone": float64(11999999999),
		"items": []any{map[string]any{"title": "Camiseta"}},
	})
	assert.Equal(t, "Ana Souza", meta.Name)
	assert.Equal(t, "11999999999", meta.Phone)

	assert.Equal(t, paymentMetadata{}, decodePaymentMetadata(nil))
}
