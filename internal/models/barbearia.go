package models

import "time"

type Barbearia struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Slug  string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone string `gorm:"size:20" json:"phone"`
	City  string `gorm:"size:100" json:"city"`
	State string `gorm:"size:2" json:"state"`

	LogoURL string `gorm:"size:255" json:"logo_url"`
	Active  bool   `gorm:"default:true" json:"active"`

	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`
	Timezone          string `gorm:"size:64" json:"timezone"`

	// ID do usuário admin que criou a barbearia
	CreatedBy uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
