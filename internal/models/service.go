package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ServiceTypeServico = "servico"
	ServiceTypeProduto = "produto"
)

// Service cobre tanto serviços (com duração) quanto produtos (com estoque)
type Service struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BarbeariaID uint `json:"barbearia_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Type        string          `gorm:"size:20;default:'servico'" json:"type"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMin int             `json:"duration_min"`
	Stock       *int            `json:"stock"`
	Active      bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
