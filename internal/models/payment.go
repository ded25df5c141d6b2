package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Payment registra cobranças criadas pelos provedores externos
// (checkout hospedado ou PIX). SessionID é único: confirmar duas vezes
// a mesma sessão não pode gerar dois registros.
type Payment struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BarbeariaID uint `json:"barbearia_id"`

	SessionID string `gorm:"size:120;uniqueIndex;not null" json:"session_id"`

	AppointmentID *uint `json:"appointment_id"`
	ClientID      *uint `json:"client_id"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method string          `gorm:"size:20;not null" json:"method"`
	Status string          `gorm:"size:20;default:'pending'" json:"status"`

	PixQRCode string `gorm:"type:text" json:"pix_qr_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
