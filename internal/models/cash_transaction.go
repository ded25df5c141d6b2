package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CashTransactionEntrada = "entrada"
	CashTransactionSaida   = "saida"
)

// Lançamento manual de caixa, independente de vendas
type CashTransaction struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BarbeariaID uint `json:"barbearia_id"`

	Type        string          `gorm:"size:10;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string          `gorm:"size:50" json:"category"`
	Description string          `gorm:"size:255;not null" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
