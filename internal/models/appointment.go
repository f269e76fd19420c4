package models

import (
	"time"

	"gorm.io/gorm"
)

// Recurrence descreve a série à qual o agendamento pertence. Filhos
// apontam sempre para a raiz via ParentAppointmentID.
type Recurrence struct {
	IsRecurring bool       `gorm:"not null" json:"is_recurring"`
	Pattern     string     `gorm:"size:20" json:"pattern,omitempty"`
	Interval    int        `json:"interval,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Occurrences *int       `json:"occurrences,omitempty"`
	Rule        string     `gorm:"size:255" json:"rule,omitempty"`

	ParentAppointmentID *uint `gorm:"index" json:"parent_appointment_id,omitempty"`
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AccountID uint `gorm:"index" json:"account_id"`

	ClientID uint    `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	ProfessionalID uint          `gorm:"index:idx_appointments_professional_date" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`

	ServiceID uint     `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Date     time.Time `gorm:"index:idx_appointments_professional_date;not null" json:"date"`
	Duration int       `gorm:"not null" json:"duration"`
	EndTime  time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes        string `gorm:"size:255" json:"notes"`
	Color        string `gorm:"size:20" json:"color"`
	SendReminder bool   `gorm:"not null" json:"send_reminder"`
	ReminderSent bool   `gorm:"not null" json:"reminder_sent"`
	IsOverride   bool   `gorm:"not null" json:"is_override"`

	Recurrence Recurrence `gorm:"embedded;embeddedPrefix:recurrence_" json:"recurrence"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// End é sempre Date + Duration.
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.Duration) * time.Minute)
}

// RootID devolve o id da raiz da série (o próprio id quando é raiz).
func (a *Appointment) RootID() uint {
	if a.Recurrence.ParentAppointmentID != nil {
		return *a.Recurrence.ParentAppointmentID
	}
	return a.ID
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.EndTime = a.End()
	return nil
}
