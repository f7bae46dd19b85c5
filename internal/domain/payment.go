package domain

import "golang.org/x/text/currency"

type User struct {
	ID    string
	Email string
	Name  string
}

type PaymentSessionRequest struct {
	Description    string
	Amount         int64 // minor units
	Currency       currency.Unit
	PayerEmail     string
	CorrelationRef string
	Metadata       map[string]string
	SuccessURL     string
	CancelURL      string
}

type PaymentSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type PaymentEventType string

const PaymentEventCompleted PaymentEventType = "payment.completed"

// PaymentEvent is a verified confirmation delivered by the payment provider.
type PaymentEvent struct {
	ID             string
	Type           PaymentEventType
	SessionID      string
	CorrelationRef string
	PayerEmail     string
	AmountTotal    int64 // minor units
	Currency       currency.Unit
	Metadata       map[string]string
}
