package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Store keeps every scheduling collaborator in process memory. It backs
// the --in-memory server mode and the tests.
type Store struct {
	mu sync.RWMutex

	nextID uint

	appointments  map[uint]models.Appointment
	professionals map[uint]models.Professional
	services      map[uint]models.Service
	clients       map[uint]models.Client
	exceptions    []models.ScheduleException

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		appointments:  map[uint]models.Appointment{},
		professionals: map[uint]models.Professional{},
		services:      map[uint]models.Service{},
		clients:       map[uint]models.Client{},
		now:           time.Now,
	}
}

var (
	_ domain.AppointmentStore      = (*Store)(nil)
	_ domain.ProfessionalDirectory = (*Store)(nil)
	_ domain.ServiceCatalog        = (*Store)(nil)
	_ domain.ClientDirectory       = (*Store)(nil)
	_ domain.ScheduleSource        = (*Store)(nil)
	_ domain.ScheduleAdmin         = (*Store)(nil)
)

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// ======================================================
// Seeding
// ======================================================

func (s *Store) AddProfessional(p models.Professional) *models.Professional {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.id()
	}
	if p.Status == "" {
		p.Status = models.ProfessionalActive
	}
	s.professionals[p.ID] = p
	return &p
}

func (s *Store) AddService(svc models.Service) *models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.id()
	}
	s.services[svc.ID] = svc
	return &svc
}

func (s *Store) AddClient(c models.Client) *models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.id()
	}
	s.clients[c.ID] = c
	return &c
}

// ======================================================
// Appointments
// ======================================================

func (s *Store) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	s.attach(&ap)
	return &ap, nil
}

func (s *Store) Save(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ap.ID == 0 {
		ap.ID = s.id()
		ap.CreatedAt = now
	}
	ap.UpdatedAt = now
	ap.EndTime = ap.End()

	stored := *ap
	stored.Client = nil
	stored.Professional = nil
	stored.Service = nil
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) Find(ctx context.Context, f domain.Filter) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, ap := range s.appointments {
		if matches(ap, f) {
			if f.WithDetails {
				s.attach(&ap)
			}
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, f domain.Filter) (int64, error) {
	f.Limit = 0
	found, err := s.Find(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(found)), nil
}

func (s *Store) attach(ap *models.Appointment) {
	if c, ok := s.clients[ap.ClientID]; ok {
		ap.Client = &c
	}
	if p, ok := s.professionals[ap.ProfessionalID]; ok {
		ap.Professional = &p
	}
	if svc, ok := s.services[ap.ServiceID]; ok {
		ap.Service = &svc
	}
}

func matches(ap models.Appointment, f domain.Filter) bool {
	if f.AccountID != 0 && ap.AccountID != f.AccountID {
		return false
	}
	if f.ProfessionalID != 0 && ap.ProfessionalID != f.ProfessionalID {
		return false
	}
	if f.ClientID != 0 && ap.ClientID != f.ClientID {
		return false
	}
	if f.ExcludeID != 0 && ap.ID == f.ExcludeID {
		return false
	}
	if f.ParentID != 0 {
		parent := ap.Recurrence.ParentAppointmentID
		if parent == nil || *parent != f.ParentID {
			return false
		}
	}
	if len(f.Statuses) > 0 && !hasStatus(f.Statuses, ap.Status) {
		return false
	}
	if hasStatus(f.ExcludeStatuses, ap.Status) {
		return false
	}
	if !f.From.IsZero() && ap.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !ap.Date.Before(f.To) {
		return false
	}
	if f.OverrideOnly && !ap.IsOverride {
		return false
	}
	if f.ReminderPending && (!ap.SendReminder || ap.ReminderSent) {
		return false
	}
	return true
}

func hasStatus(list []domain.Status, status string) bool {
	for _, st := range list {
		if string(st) == status {
			return true
		}
	}
	return false
}

// ======================================================
// Directories
// ======================================================

func (s *Store) GetProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.professionals[id]
	if !ok {
		return nil, domain.ErrProfessionalNotFound
	}
	return &p, nil
}

func (s *Store) GetService(ctx context.Context, id uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Store) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

// ======================================================
// Schedule
// ======================================================

func (s *Store) LoadSchedule(ctx context.Context, professionalID uint) (*domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.professionals[professionalID]
	if !ok {
		return nil, domain.ErrProfessionalNotFound
	}

	sched := &domain.Schedule{
		ProfessionalID: p.ID,
		Location:       timezone.Location(p.Timezone),
		WorkingHours:   p.WorkingHours.Data(),
	}
	for _, ex := range s.exceptions {
		if ex.ProfessionalID == professionalID {
			sched.Exceptions = append(sched.Exceptions, ex)
		}
	}
	return sched, nil
}

func (s *Store) SaveWorkingHours(ctx context.Context, professionalID uint, spec models.WorkingHoursSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.professionals[professionalID]
	if !ok {
		return domain.ErrProfessionalNotFound
	}
	p.WorkingHours = datatypes.NewJSONType(spec)
	p.UpdatedAt = s.now()
	s.professionals[professionalID] = p
	return nil
}

func (s *Store) ListExceptions(ctx context.Context, professionalID uint) ([]models.ScheduleException, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ScheduleException, 0)
	for _, ex := range s.exceptions {
		if ex.ProfessionalID == professionalID {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (s *Store) CreateException(ctx context.Context, ex *models.ScheduleException) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.professionals[ex.ProfessionalID]; !ok {
		return domain.ErrProfessionalNotFound
	}
	ex.ID = s.id()
	ex.CreatedAt = s.now()
	s.exceptions = append(s.exceptions, *ex)
	return nil
}
