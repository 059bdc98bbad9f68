package structs

import (
	"bytes"
	"encoding/json"

	"github.com/spf13/cast"
)

// PixPayer identifies the buyer. Field names follow the storefront form.
type PixPayer struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Nome     string `json:"nome" validate:"max=120"`
	Telefone string `json:"telefone" validate:"max=30"`
}

type CartItem struct {
	Title string  `json:"title" validate:"max=200"`
	Size  string  `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Qty   int     `json:"qty" validate:"gte=0"`
	Price float64 `json:"price" validate:"gte=0"`
}

type PixCheckoutRequest struct {
	Amount float64    `json:"amount"`
	Payer  PixPayer   `json:"payer"`
	Items  []CartItem `json:"items" validate:"dive"`
}

type PixCheckoutResponse struct {
	ID           int64   `json:"id"`
	Status       string  `json:"status"`
	QRCode       string  `json:"qr_code"`
	QRBase64     string  `json:"qr_base64"`
	CopyAndPaste string  `json:"copy_and_paste"`
	Amount       float64 `json:"amount"`
}

// PaymentNotification is the webhook body sent by the payment provider.
type PaymentNotification struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Data   struct {
		ID ProviderID `json:"id"`
	} `json:"data"`
}

// ProviderID accepts ids sent either as JSON strings or numbers.
type ProviderID string

func (id *ProviderID) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*id = ""
		return nil
	case json.Number:
		*id = ProviderID(v.String())
		return nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return err
	}
	*id = ProviderID(s)
	return nil
}

// MPPaymentRequest is the Mercado Pago create-payment body.
type MPPaymentRequest struct {
	TransactionAmount float64        `json:"transaction_amount"`
	Description       string         `json:"description"`
	PaymentMethodID   string         `json:"payment_method_id"`
	Payer             MPPayer        `json:"payer"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

type MPPayer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// MPPayment is the subset of the Mercado Pago payment resource we read.
type MPPayment struct {
	ID                 int64          `json:"id"`
	Status             string         `json:"status"`
	StatusDetail       string         `json:"status_detail"`
	TransactionAmount  float64        `json:"transaction_amount"`
	Payer              MPPayer        `json:"payer"`
	Metadata           map[string]any `json:"metadata"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`

	// Error fields returned on non-2xx answers.
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
