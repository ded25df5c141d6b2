package checkout

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/payment"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateSessionInput struct {
	BarbeariaID uint
	UserID      uint

	ClientID       uint
	ProfessionalID uint
	ServiceID      uint

	Date  string // 2006-01-02
	Time  string // 15:04
	Notes string
}

type CreateSessionOutput struct {
	SessionID   string          `json:"session_id"`
	RedirectURL string          `json:"url"`
	Amount      decimal.Decimal `json:"amount"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateSession struct {
	store    Store
	provider payment.CheckoutProvider
	audit    *audit.Dispatcher
}

func NewCreateSession(
	store Store,
	provider payment.CheckoutProvider,
	audit *audit.Dispatcher,
) *CreateSession {
	return &CreateSession{
		store:    store,
		provider: provider,
		audit:    audit,
	}
}

func (uc *CreateSession) Execute(
	ctx context.Context,
	in CreateSessionInput,
) (*CreateSessionOutput, error) {

	if in.UserID == 0 {
		return nil, httperr.ErrBusiness("unauthorized")
	}

	svc, err := uc.store.GetService(ctx, in.BarbeariaID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	prof, err := uc.store.GetProfessional(ctx, in.BarbeariaID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	client, err := uc.store.GetClient(ctx, in.BarbeariaID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	// Valor em centavos para o provedor
	centavos := svc.Price.Shift(2).Round(0).IntPart()

	session, err := uc.provider.CreateSession(ctx, payment.CreateSessionInput{
		Title:          fmt.Sprintf("%s - %s", svc.Name, prof.Name),
		Description:    fmt.Sprintf("Agendamento para %s às %s", in.Date, in.Time),
		AmountCentavos: centavos,
		CustomerEmail:  client.Email,
		Metadata: map[string]string{
			"barbearia_id":    strconv.FormatUint(uint64(in.BarbeariaID), 10),
			"client_id":       strconv.FormatUint(uint64(in.ClientID), 10),
			"professional_id": strconv.FormatUint(uint64(in.ProfessionalID), 10),
			"service_id":      strconv.FormatUint(uint64(in.ServiceID), 10),
			"scheduled_date":  in.Date,
			"scheduled_time":  in.Time,
			"notes":           in.Notes,
			"user_id":         strconv.FormatUint(uint64(in.UserID), 10),
		},
	})
	if err != nil {
		return nil, httperr.ErrBusiness("payment_provider_error")
	}

	uc.audit.Dispatch(audit.Event{
		BarbeariaID: in.BarbeariaID,
		UserID:      &in.UserID,
		Action:      "checkout_session_created",
		Entity:      "payment",
		Metadata:    map[string]string{"session_id": session.ID},
	})

	return &CreateSessionOutput{
		SessionID:   session.ID,
		RedirectURL: session.URL,
		Amount:      svc.Price,
	}, nil
}
