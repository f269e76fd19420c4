package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func notFound(err error, as error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return as
	}
	return err
}

// --------------------------------------------------
// Directories
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrProfessionalNotFound)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, domain.ErrClientNotFound)
	}
	return &c, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) LoadSchedule(
	ctx context.Context,
	professionalID uint,
) (*domain.Schedule, error) {

	p, err := r.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	exceptions, err := r.ListExceptions(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	return &domain.Schedule{
		ProfessionalID: p.ID,
		Location:       timezone.Location(p.Timezone),
		WorkingHours:   p.WorkingHours.Data(),
		Exceptions:     exceptions,
	}, nil
}

func (r *AppointmentGormRepository) SaveWorkingHours(
	ctx context.Context,
	professionalID uint,
	spec models.WorkingHoursSpec,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ?", professionalID).
		Update("working_hours", datatypes.NewJSONType(spec))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfessionalNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) ListExceptions(
	ctx context.Context,
	professionalID uint,
) ([]models.ScheduleException, error) {

	var list []models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *AppointmentGormRepository) CreateException(
	ctx context.Context,
	ex *models.ScheduleException,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}
