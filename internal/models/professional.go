package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProfessionalActive   = "active"
	ProfessionalInactive = "inactive"
)

type Professional struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `gorm:"index" json:"account_id"`

	// Usuário do sistema vinculado ao profissional, quando existe.
	UserAccountID *uint `json:"user_account_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100" json:"email"`
	Status   string `gorm:"size:20;default:'active'" json:"status"`
	Timezone string `gorm:"size:64" json:"timezone"`

	WorkingHours datatypes.JSONType[WorkingHoursSpec] `json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
