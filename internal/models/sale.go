package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodDinheiro      = "dinheiro"
	PaymentMethodCartaoDebito  = "cartao_debito"
	PaymentMethodCartaoCredito = "cartao_credito"
	PaymentMethodPix           = "pix"
	PaymentMethodTransferencia = "transferencia"
)

type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbeariaID uint `json:"barbearia_id"`

	ProfessionalID uint `json:"professional_id"`
	Professional   User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `gorm:"size:255" json:"notes"`

	Items []SaleItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
}

type SaleItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `json:"sale_id"`

	ServiceID uint `json:"service_id"`

	// Nome congelado no momento da venda
	ServiceName string `gorm:"size:100;not null" json:"service_name"`

	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
}
