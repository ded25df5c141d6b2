package models

import "time"

// User é um membro da equipe (profissional, recepção ou admin) com login próprio
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BarbeariaID uint      `json:"barbearia_id"`
	Barbearia   Barbearia `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbearia"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'barbeiro'" json:"role"`

	Active         bool   `gorm:"default:true" json:"active"`
	Specialties    string `gorm:"size:255" json:"specialties"`
	AvatarURL      string `gorm:"size:255" json:"avatar_url"`
	EmailConfirmed bool   `gorm:"default:false" json:"email_confirmed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
