package lock

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

// Key is shared by every DayLocker implementation.
func Key(professionalID uint, day string) string {
	return fmt.Sprintf("schedule-lock:%d:%s", professionalID, day)
}

type entry struct {
	sem  chan struct{}
	refs int
}

// Local serializes work per (professional, day) inside one process.
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewLocal() *Local {
	return &Local{entries: map[string]*entry{}}
}

var _ domain.DayLocker = (*Local)(nil)

func (l *Local) Lock(ctx context.Context, professionalID uint, day string) (func(), error) {
	key := Key(professionalID, day)

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// held reports how many keys are tracked; used by tests.
func (l *Local) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
