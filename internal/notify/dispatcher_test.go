package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type recordingSink struct {
	mu   sync.Mutex
	got  []models.Notification
	fail bool
}

func (s *recordingSink) Deliver(ctx context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.got = append(s.got, n)
	return nil
}

func TestDispatcherFansOutAndSurvivesFailures(t *testing.T) {
	broken := &recordingSink{fail: true}
	ok := &recordingSink{}

	d := NewDispatcher(zerolog.Nop(), broken, ok)
	d.Notify(context.Background(), models.Notification{RecipientID: 1, Title: "Novo agendamento"})
	d.Notify(context.Background(), models.Notification{RecipientID: 1, Title: "Agendamento cancelado"})
	d.Close()

	if len(ok.got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(ok.got))
	}
	if ok.got[0].CreatedAt.IsZero() {
		t.Fatal("created_at should be stamped")
	}
}

func TestNotifyAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(zerolog.Nop(), sink)
	d.Close()

	d.Notify(context.Background(), models.Notification{RecipientID: 1, Title: "Agendamento confirmado"})
	d.Close()

	if len(sink.got) != 0 {
		t.Fatalf("expected no deliveries after close, got %d", len(sink.got))
	}
}

func TestNotifyRacingClose(t *testing.T) {
	d := NewDispatcher(zerolog.Nop(), &recordingSink{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Notify(context.Background(), models.Notification{RecipientID: 1, Title: "Novo agendamento"})
			}
		}()
	}
	d.Close()
	wg.Wait()
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Notify(context.Background(), models.Notification{})
	d.Close()
}
