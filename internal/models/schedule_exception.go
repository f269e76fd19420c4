package models

import "time"

const (
	ExceptionBreak   = "break"
	ExceptionTimeOff = "time_off"
)

// ScheduleException bloqueia parte da agenda: um intervalo recorrente
// (Weekday) ou de uma data específica (Date), ou uma folga de dia inteiro.
// Date é uma data de calendário gravada à meia-noite UTC.
type ScheduleException struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	Kind string `gorm:"size:20;not null" json:"kind"`

	Weekday *int       `json:"weekday,omitempty"`
	Date    *time.Time `gorm:"type:date" json:"date,omitempty"`

	Start string `gorm:"size:5" json:"start,omitempty"`
	End   string `gorm:"size:5" json:"end,omitempty"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
