package payment

import (
	"context"
	"errors"
)

// ErrSessionNotFound indica que o provedor não conhece a sessão informada.
var ErrSessionNotFound = errors.New("checkout session not found")

type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64 // centavos
	Metadata      map[string]string
}

type CreateSessionInput struct {
	Title          string
	Description    string
	AmountCentavos int64
	CustomerEmail  string
	Metadata       map[string]string
}

// CheckoutProvider é a porta para o checkout hospedado. A sessão do
// provedor é a fonte de verdade entre a criação e a confirmação.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error)
}
