package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	TypeAppointment = "appointment"
	TypeReminder    = "reminder"
)

// Sink entrega uma notificação a um destino (banco, Kafka, log).
type Sink interface {
	Deliver(ctx context.Context, n models.Notification) error
}

// Dispatcher entrega notificações em segundo plano para todos os sinks.
// Falhas só são logadas: agendar nunca depende de notificar.
type Dispatcher struct {
	sinks   []Sink
	queue   chan models.Notification
	logger  zerolog.Logger
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		queue:   make(chan models.Notification, 256),
		logger:  logger.With().Str("component", "notify").Logger(),
		timeout: 5 * time.Second,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

var _ domain.Notifier = (*Dispatcher)(nil)

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for n := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := sink.Deliver(ctx, n); err != nil {
				d.logger.Error().
					Err(err).
					Uint("recipient_id", n.RecipientID).
					Str("title", n.Title).
					Msg("notification delivery failed")
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Notify(ctx context.Context, n models.Notification) {
	if d == nil {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn().Str("title", n.Title).Msg("notification dispatcher closed, dropping")
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.Warn().Str("title", n.Title).Msg("notification queue full, dropping")
	}
}

// Close drena a fila; chamadas posteriores a Notify são descartadas.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}
