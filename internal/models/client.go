package models

import "time"

// Cliente simples, sem login, vinculado à barbearia
type Client struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	BarbeariaID uint `json:"barbearia_id"`

	Name      string     `gorm:"size:100;not null" json:"name"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:100" json:"email"`
	BirthDate *time.Time `json:"birth_date"`
	Notes     string     `gorm:"size:255" json:"notes"`
	AvatarURL string     `gorm:"size:255" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
