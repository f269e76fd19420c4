package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Filter seleciona agendamentos. Campos zerados não filtram.
type Filter struct {
	AccountID      uint
	ProfessionalID uint
	ClientID       uint

	Statuses        []Status
	ExcludeStatuses []Status
	ExcludeID       uint

	// ParentID seleciona os filhos de uma série.
	ParentID uint

	// From inclusivo, To exclusivo, sobre Date.
	From time.Time
	To   time.Time

	OverrideOnly    bool
	ReminderPending bool

	// WithDetails carrega cliente, profissional e serviço.
	WithDetails bool

	Limit int
}

// AppointmentStore é o único contrato de persistência do núcleo.
// Find ordena por data e depois id.
type AppointmentStore interface {
	Find(ctx context.Context, f Filter) ([]models.Appointment, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	Save(ctx context.Context, ap *models.Appointment) error
}

type ProfessionalDirectory interface {
	GetProfessional(ctx context.Context, id uint) (*models.Professional, error)
}

type ServiceCatalog interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

type ClientDirectory interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
}

// ScheduleSource monta o Schedule de um profissional, já no fuso dele.
type ScheduleSource interface {
	LoadSchedule(ctx context.Context, professionalID uint) (*Schedule, error)
}

// ScheduleAdmin altera expediente e exceções de um profissional.
type ScheduleAdmin interface {
	SaveWorkingHours(ctx context.Context, professionalID uint, spec models.WorkingHoursSpec) error
	ListExceptions(ctx context.Context, professionalID uint) ([]models.ScheduleException, error)
	CreateException(ctx context.Context, ex *models.ScheduleException) error
}

// Notifier entrega notificações sem bloquear; falhas nunca sobem.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// DayLocker serializa mutações de um profissional num dia local.
type DayLocker interface {
	Lock(ctx context.Context, professionalID uint, day string) (unlock func(), err error)
}

// CatalogAdmin mantém profissionais, serviços e clientes de uma conta.
type CatalogAdmin interface {
	ListProfessionals(ctx context.Context, accountID uint) ([]models.Professional, error)
	CreateProfessional(ctx context.Context, p *models.Professional) error

	ListServices(ctx context.Context, accountID uint, activeOnly bool) ([]models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error

	// ListClients filtra por nome, telefone ou e-mail quando query não é vazia.
	ListClients(ctx context.Context, accountID uint, query string) ([]models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
}
