package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Memory keeps audit rows in process; used with the in-memory server.
type Memory struct {
	mu   sync.RWMutex
	logs []models.AuditLog
}

func NewMemory() *Memory {
	return &Memory{}
}

var (
	_ Sink   = (*Memory)(nil)
	_ Reader = (*Memory)(nil)
)

func (m *Memory) Record(ctx context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := toLog(ev)
	log.ID = uint(len(m.logs) + 1)
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, log)
	return nil
}

func (m *Memory) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.AuditLog
	for _, l := range m.logs {
		if l.AccountID != q.AccountID {
			continue
		}
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if q.From != nil && l.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !l.CreatedAt.Before(*q.To) {
			continue
		}
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := int64(len(out))
	if q.Offset >= len(out) {
		return []models.AuditLog{}, total, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}
