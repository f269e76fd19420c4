package models

import "time"

type Notification struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	AccountID   uint `gorm:"index" json:"account_id"`
	RecipientID uint `gorm:"index" json:"recipient_id"`

	Title   string `gorm:"size:120;not null" json:"title"`
	Message string `gorm:"size:500" json:"message"`
	Type    string `gorm:"size:30" json:"type"`

	RelatedEntity string `gorm:"size:50" json:"related_entity"`
	RelatedID     uint   `json:"related_id"`

	IsRead bool `gorm:"not null" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
