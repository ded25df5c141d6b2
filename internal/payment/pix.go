package payment

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
)

type PixCharge struct {
	ID           string
	Status       string
	QRCode       string
	QRCodeBase64 string
	TicketURL    string
}

// PixCharger cria cobranças PIX via Mercado Pago.
type PixCharger struct {
	client mppayment.Client
}

func NewPixCharger(accessToken string) (*PixCharger, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &PixCharger{client: mppayment.NewClient(cfg)}, nil
}

func (p *PixCharger) CreateCharge(
	ctx context.Context,
	amount decimal.Decimal,
	description string,
	payerEmail string,
) (*PixCharge, error) {

	value, _ := amount.Round(2).Float64()

	req := mppayment.Request{
		TransactionAmount: value,
		Description:       description,
		PaymentMethodID:   "pix",
		Payer: &mppayment.PayerRequest{
			Email: payerEmail,
		},
	}

	res, err := p.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago create payment: %w", err)
	}

	charge := &PixCharge{
		ID:     strconv.Itoa(res.ID),
		Status: res.Status,
	}

	charge.QRCode = res.PointOfInteraction.TransactionData.QRCode
	charge.QRCodeBase64 = res.PointOfInteraction.TransactionData.QRCodeBase64
	charge.TicketURL = res.PointOfInteraction.TransactionData.TicketURL

	return charge, nil
}
