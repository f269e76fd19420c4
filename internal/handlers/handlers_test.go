package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
	audit  *audit.Memory
	actor  *domain.Actor

	pro     *models.Professional
	other   *models.Professional
	service *models.Service
	client  *models.Client
}

// Segunda a sexta, 09:00 às 18:00 UTC. "Agora" é sexta, 2023-12-01 08:00.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	hours := models.DayHours{Start: "09:00", End: "18:00"}
	week := models.WorkingHoursSpec{
		"monday": hours, "tuesday": hours, "wednesday": hours,
		"thursday": hours, "friday": hours,
	}

	pro := store.AddProfessional(models.Professional{
		AccountID: 1, Name: "Ana", Timezone: "UTC",
		WorkingHours: datatypes.NewJSONType(week),
	})
	other := store.AddProfessional(models.Professional{
		AccountID: 1, Name: "Bia", Timezone: "UTC",
		WorkingHours: datatypes.NewJSONType(week),
	})
	svc := store.AddService(models.Service{AccountID: 1, Name: "Corte", Duration: 60, Active: true})
	cli := store.AddClient(models.Client{AccountID: 1, Name: "João"})

	auditMem := audit.NewMemory()
	auditor := audit.NewDispatcher(auditMem, zerolog.Nop())
	notifier := notify.NewDispatcher(zerolog.Nop())
	t.Cleanup(func() {
		auditor.Close()
		notifier.Close()
	})

	deps := &usecase.Dependencies{
		Store:         store,
		Professionals: store,
		Services:      store,
		Clients:       store,
		Engine:        domain.NewEngine(store, store, 2),
		Locker:        lock.NewLocal(),
		Notifier:      notifier,
		Audit:         auditor,
		Logger:        zerolog.Nop(),
		Now: func() time.Time {
			return time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC)
		},
	}

	actor := &domain.Actor{AccountID: 1, UserID: 100, Role: domain.RoleOwner}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActor, *actor)
		c.Next()
	})

	ah := NewAppointmentHandler(deps)
	wh := NewWorkingHoursHandler(store, store, auditor)
	ph := NewProfessionalHandler(store, store)
	sh := NewServiceHandler(store, store)
	ch := NewClientHandler(store)
	lh := NewAuditLogsHandler(auditMem)

	r.GET("/me", ph.Me)
	r.GET("/professionals", ph.List)
	r.POST("/professionals", ph.Create)
	r.GET("/services", sh.List)
	r.POST("/services", sh.Create)
	r.PATCH("/services/:id", sh.Update)
	r.GET("/clients", ch.List)
	r.POST("/clients", ch.Create)
	r.GET("/professionals/:id/working-hours", wh.Get)
	r.PUT("/professionals/:id/working-hours", wh.Update)
	r.GET("/professionals/:id/exceptions", wh.ListExceptions)
	r.POST("/professionals/:id/exceptions", wh.CreateException)
	r.GET("/professionals/:id/calendar.ics", ah.Calendar)
	r.POST("/appointments", ah.Create)
	r.GET("/appointments", ah.List)
	r.GET("/appointments/availability", ah.Availability)
	r.PATCH("/appointments/:id", ah.Update)
	r.PATCH("/appointments/:id/cancel", ah.Cancel)
	r.PATCH("/appointments/:id/confirm", ah.Confirm)
	r.PUT("/appointments/:id/status", ah.ChangeStatus)
	r.GET("/audit-logs", lh.List)

	return &testServer{
		engine:  r,
		store:   store,
		audit:   auditMem,
		actor:   actor,
		pro:     pro,
		other:   other,
		service: svc,
		client:  cli,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) createBody(start string) map[string]any {
	return map[string]any{
		"client_id":       s.client.ID,
		"professional_id": s.pro.ID,
		"service_id":      s.service.ID,
		"date":            start,
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["error_code"].(string)
}

func sleep() { time.Sleep(5 * time.Millisecond) }
