package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *usecase.CreateAppointment
	update       *usecase.UpdateAppointment
	cancel       *usecase.CancelAppointment
	confirm      *usecase.ConfirmAppointment
	changeStatus *usecase.ChangeStatus
	list         *usecase.ListAppointments
	slots        *usecase.ListAvailableSlots
	calendar     *usecase.ExportCalendar
}

func NewAppointmentHandler(deps *usecase.Dependencies) *AppointmentHandler {
	return &AppointmentHandler{
		create:       usecase.NewCreateAppointment(deps),
		update:       usecase.NewUpdateAppointment(deps),
		cancel:       usecase.NewCancelAppointment(deps),
		confirm:      usecase.NewConfirmAppointment(deps),
		changeStatus: usecase.NewChangeStatus(deps),
		list:         usecase.NewListAppointments(deps),
		slots:        usecase.NewListAvailableSlots(deps),
		calendar:     usecase.NewExportCalendar(deps),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       uint      `json:"client_id" binding:"required"`
	ProfessionalID uint      `json:"professional_id" binding:"required"`
	ServiceID      uint      `json:"service_id" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	Notes          string    `json:"notes"`
	Color          string    `json:"color"`
	SendReminder   *bool     `json:"send_reminder"`
	AllowOverride  bool      `json:"allow_override"`

	Recurrence *domain.RecurrenceRule `json:"recurrence"`
}

type UpdateAppointmentRequest struct {
	Date         *time.Time `json:"date"`
	Duration     *int       `json:"duration"`
	Notes        *string    `json:"notes"`
	Color        *string    `json:"color"`
	SendReminder *bool      `json:"send_reminder"`
	Status       *string    `json:"status"`

	ClientID       *uint `json:"client_id"`
	ProfessionalID *uint `json:"professional_id"`
	ServiceID      *uint `json:"service_id"`

	AllowOverride bool `json:"allow_override"`
	ApplyToFuture bool `json:"apply_to_future"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		Actor:          middleware.ActorFrom(c),
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Notes:          req.Notes,
		Color:          req.Color,
		SendReminder:   req.SendReminder,
		AllowOverride:  req.AllowOverride,
		Recurrence:     req.Recurrence,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	professionalID, ok1 := queryID(c, "professional_id")
	clientID, ok2 := queryID(c, "client_id")
	from, to, ok3 := parseRange(c)
	if !ok1 || !ok2 || !ok3 {
		httperr.BadRequest(c, "invalid_query", "Parâmetros inválidos.")
		return
	}

	out, err := h.list.Execute(c.Request.Context(), usecase.ListAppointmentsInput{
		Actor:          middleware.ActorFrom(c),
		ProfessionalID: professionalID,
		ClientID:       clientID,
		Status:         c.Query("status"),
		From:           from,
		To:             to,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		Actor:          middleware.ActorFrom(c),
		AppointmentID:  id,
		Date:           req.Date,
		Duration:       req.Duration,
		Notes:          req.Notes,
		Color:          req.Color,
		SendReminder:   req.SendReminder,
		Status:         req.Status,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		AllowOverride:  req.AllowOverride,
		ApplyToFuture:  req.ApplyToFuture,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CANCEL / CONFIRM
// ======================================================

func (h *AppointmentHandler) statusChangeInput(c *gin.Context) (usecase.StatusChangeInput, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return usecase.StatusChangeInput{}, false
	}
	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))

	return usecase.StatusChangeInput{
		Actor:         middleware.ActorFrom(c),
		AppointmentID: id,
		Cascade:       cascade,
	}, true
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	in, ok := h.statusChangeInput(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	out, err := h.cancel.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment")
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	in, ok := h.statusChangeInput(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	out, err := h.confirm.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_confirm_appointment")
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), usecase.ChangeStatusInput{
		Actor:         middleware.ActorFrom(c),
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_change_status")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	professionalID, ok1 := parseID(c.Query("professional_id"))
	serviceID, ok2 := parseID(c.Query("service_id"))
	date := c.Query("date")
	if !ok1 || !ok2 || date == "" {
		httperr.BadRequest(c, "invalid_query", "Profissional, serviço e data são obrigatórios.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), usecase.ListAvailableSlotsInput{
		Actor:          middleware.ActorFrom(c),
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_slots")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CALENDAR (iCalendar)
// ======================================================

func (h *AppointmentHandler) Calendar(c *gin.Context) {
	professionalID, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	from, to, ok := parseRange(c)
	if !ok {
		httperr.BadRequest(c, "invalid_query", "Período inválido.")
		return
	}

	ics, err := h.calendar.Execute(c.Request.Context(), usecase.ExportCalendarInput{
		Actor:          middleware.ActorFrom(c),
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_export_calendar")
		return
	}

	c.Header("Content-Disposition", "inline; filename=agenda.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
