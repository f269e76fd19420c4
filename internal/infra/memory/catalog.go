package memory

import (
	"context"
	"sort"
	"strings"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var _ domain.CatalogAdmin = (*Store)(nil)

func (s *Store) ListProfessionals(ctx context.Context, accountID uint) ([]models.Professional, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Professional, 0)
	for _, p := range s.professionals {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateProfessional(ctx context.Context, p *models.Professional) error {
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	*p = *s.AddProfessional(*p)
	return nil
}

func (s *Store) ListServices(ctx context.Context, accountID uint, activeOnly bool) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0)
	for _, svc := range s.services {
		if svc.AccountID != accountID || (activeOnly && !svc.Active) {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	now := s.now()
	svc.CreatedAt, svc.UpdatedAt = now, now
	*svc = *s.AddService(*svc)
	return nil
}

func (s *Store) UpdateService(ctx context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	svc.UpdatedAt = s.now()
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) ListClients(ctx context.Context, accountID uint, query string) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Client, 0)
	for _, c := range s.clients {
		if c.AccountID != accountID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(c.Phone, query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	*c = *s.AddClient(*c)
	return nil
}
