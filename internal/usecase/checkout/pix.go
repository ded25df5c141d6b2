package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/payment"
)

type PixStore interface {
	Store
	CreatePayment(ctx context.Context, pay *models.Payment) error
}

type CreatePixChargeInput struct {
	BarbeariaID uint
	UserID      uint

	ClientID    uint
	Amount      decimal.Decimal
	Description string
}

type CreatePixChargeOutput struct {
	PaymentID    uint   `json:"payment_id"`
	ChargeID     string `json:"charge_id"`
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

// CreatePixCharge gera uma cobrança PIX e registra o pagamento pendente.
type CreatePixCharge struct {
	store   PixStore
	charger *payment.PixCharger
	audit   *audit.Dispatcher
}

func NewCreatePixCharge(
	store PixStore,
	charger *payment.PixCharger,
	audit *audit.Dispatcher,
) *CreatePixCharge {
	return &CreatePixCharge{
		store:   store,
		charger: charger,
		audit:   audit,
	}
}

func (uc *CreatePixCharge) Execute(
	ctx context.Context,
	in CreatePixChargeInput,
) (*CreatePixChargeOutput, error) {

	if in.UserID == 0 {
		return nil, httperr.ErrBusiness("unauthorized")
	}

	if !in.Amount.IsPositive() {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	client, err := uc.store.GetClient(ctx, in.BarbeariaID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	charge, err := uc.charger.CreateCharge(ctx, in.Amount, in.Description, client.Email)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_provider_error")
	}

	pay := &models.Payment{
		BarbeariaID: in.BarbeariaID,
		SessionID:   "pix_" + charge.ID,
		ClientID:    &client.ID,
		Amount:      in.Amount,
		Method:      models.PaymentMethodPix,
		Status:      models.PaymentStatusPending,
		PixQRCode:   charge.QRCode,
	}

	if err := uc.store.CreatePayment(ctx, pay); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbeariaID: in.BarbeariaID,
		UserID:      &in.UserID,
		Action:      "pix_charge_created",
		Entity:      "payment",
		EntityID:    &pay.ID,
	})

	return &CreatePixChargeOutput{
		PaymentID:    pay.ID,
		ChargeID:     charge.ID,
		QRCode:       charge.QRCode,
		QRCodeBase64: charge.QRCodeBase64,
		TicketURL:    charge.TicketURL,
	}, nil
}
