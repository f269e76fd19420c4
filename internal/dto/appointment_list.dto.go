package dto

import "time"

type AppointmentListDTO struct {
	ID             uint      `json:"id"`
	Date           time.Time `json:"date"`
	EndTime        time.Time `json:"end_time"`
	Duration       int       `json:"duration"`
	Status         string    `json:"status"`
	Color          string    `json:"color"`
	Notes          string    `json:"notes"`
	ProfessionalID uint      `json:"professional_id"`
	ClientName     string    `json:"client_name"`
	ServiceName    string    `json:"service_name"`

	IsOverride            bool `json:"is_override"`
	IsOutsideWorkingHours bool `json:"is_outside_working_hours"`

	IsRecurring         bool  `json:"is_recurring"`
	ParentAppointmentID *uint `json:"parent_appointment_id,omitempty"`
}

// SlotDTO é um horário candidato; Reason traz o código quando indisponível.
type SlotDTO struct {
	Time                  time.Time `json:"time"`
	Label                 string    `json:"label"`
	Available             bool      `json:"available"`
	IsOutsideWorkingHours bool      `json:"is_outside_working_hours"`
	Reason                string    `json:"reason,omitempty"`
}
