package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var (
	_ domain.AppointmentStore      = (*AppointmentGormRepository)(nil)
	_ domain.ProfessionalDirectory = (*AppointmentGormRepository)(nil)
	_ domain.ServiceCatalog        = (*AppointmentGormRepository)(nil)
	_ domain.ClientDirectory       = (*AppointmentGormRepository)(nil)
	_ domain.ScheduleSource        = (*AppointmentGormRepository)(nil)
	_ domain.ScheduleAdmin         = (*AppointmentGormRepository)(nil)
)

func statusStrings(list []domain.Status) []string {
	out := make([]string, 0, len(list))
	for _, st := range list {
		out = append(out, string(st))
	}
	return out
}

// --------------------------------------------------
// Filter
// --------------------------------------------------

func (r *AppointmentGormRepository) scoped(ctx context.Context, f domain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.AccountID != 0 {
		q = q.Where("account_id = ?", f.AccountID)
	}
	if f.ProfessionalID != 0 {
		q = q.Where("professional_id = ?", f.ProfessionalID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(f.Statuses))
	}
	if len(f.ExcludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", statusStrings(f.ExcludeStatuses))
	}
	if f.ExcludeID != 0 {
		q = q.Where("id <> ?", f.ExcludeID)
	}
	if f.ParentID != 0 {
		q = q.Where("recurrence_parent_appointment_id = ?", f.ParentID)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("date < ?", f.To)
	}
	if f.OverrideOnly {
		q = q.Where("is_override = ?", true)
	}
	if f.ReminderPending {
		q = q.Where("send_reminder = ? AND reminder_sent = ?", true, false)
	}
	return q
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Find(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	q := r.scoped(ctx, f).Order("date ASC, id ASC")

	if f.WithDetails {
		q = q.Preload("Client").Preload("Service").Preload("Professional")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var list []models.Appointment
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentGormRepository) Count(
	ctx context.Context,
	f domain.Filter,
) (int64, error) {

	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

// Save grava só a linha do agendamento; associações carregadas não são
// reescritas.
func (r *AppointmentGormRepository) Save(
	ctx context.Context,
	ap *models.Appointment,
) error {

	q := r.db.WithContext(ctx).Omit(clause.Associations)
	if ap.ID == 0 {
		return q.Create(ap).Error
	}
	return q.Save(ap).Error
}
