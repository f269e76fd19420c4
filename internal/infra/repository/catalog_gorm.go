package repository

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var _ domain.CatalogAdmin = (*AppointmentGormRepository)(nil)

func (r *AppointmentGormRepository) ListProfessionals(
	ctx context.Context,
	accountID uint,
) ([]models.Professional, error) {

	var list []models.Professional
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *AppointmentGormRepository) CreateProfessional(ctx context.Context, p *models.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	accountID uint,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var list []models.Service
	err := q.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *AppointmentGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *AppointmentGormRepository) UpdateService(ctx context.Context, svc *models.Service) error {
	res := r.db.WithContext(ctx).Save(svc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) ListClients(
	ctx context.Context,
	accountID uint,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var list []models.Client
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *AppointmentGormRepository) CreateClient(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}
