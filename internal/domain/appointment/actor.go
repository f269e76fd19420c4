package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

type Role string

const (
	RoleOwner        Role = "owner"
	RoleProfessional Role = "professional"
)

// Actor é quem executa a operação. Vem do token, nunca do corpo da
// requisição.
type Actor struct {
	AccountID      uint
	UserID         uint
	Role           Role
	ProfessionalID uint
	CanViewAll     bool
}

func (a Actor) CanManage(professionalID uint) bool {
	if a.Role != RoleProfessional || a.CanViewAll {
		return true
	}
	return a.ProfessionalID != 0 && a.ProfessionalID == professionalID
}

// Authorize esconde agendamentos de outra conta (not found) e recusa os
// de outro profissional (forbidden).
func (a Actor) Authorize(ap *models.Appointment) error {
	if ap.AccountID != a.AccountID {
		return ErrAppointmentNotFound
	}
	if !a.CanManage(ap.ProfessionalID) {
		return ErrForbidden
	}
	return nil
}
