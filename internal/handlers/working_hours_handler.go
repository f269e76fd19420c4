package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	professionals domain.ProfessionalDirectory
	admin         domain.ScheduleAdmin
	audit         *audit.Dispatcher
}

func NewWorkingHoursHandler(
	professionals domain.ProfessionalDirectory,
	admin domain.ScheduleAdmin,
	auditor *audit.Dispatcher,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		professionals: professionals,
		admin:         admin,
		audit:         auditor,
	}
}

type ExceptionRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Weekday *int   `json:"weekday"`
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Reason  string `json:"reason"`
}

// professional resolve o :id respeitando conta e permissão do Actor.
func (h *WorkingHoursHandler) professional(c *gin.Context) (*models.Professional, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	actor := middleware.ActorFrom(c)

	p, err := h.professionals.GetProfessional(c.Request.Context(), id)
	if err == nil && p.AccountID != actor.AccountID {
		err = domain.ErrProfessionalNotFound
	}
	if err == nil && !actor.CanManage(p.ID) {
		err = domain.ErrForbidden
	}
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_professional")
		return nil, false
	}
	return p, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	p, ok := h.professional(c)
	if !ok {
		return
	}

	spec := p.WorkingHours.Data()
	if spec == nil {
		spec = models.WorkingHoursSpec{}
	}

	httpresp.OK(c, gin.H{
		"professional_id": p.ID,
		"timezone":        p.Timezone,
		"working_hours":   spec,
	})
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	p, ok := h.professional(c)
	if !ok {
		return
	}

	var spec models.WorkingHoursSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := domain.ValidateWorkingHours(spec); err != nil {
		httperr.FromError(c, err, "invalid_working_hours")
		return
	}
	spec = domain.NormalizeWorkingHours(spec)

	if err := h.admin.SaveWorkingHours(c.Request.Context(), p.ID, spec); err != nil {
		httperr.FromError(c, err, "failed_to_save_working_hours")
		return
	}

	h.record(c, "working_hours_updated", p.ID, spec)

	httpresp.OK(c, gin.H{
		"professional_id": p.ID,
		"working_hours":   spec,
	})
}

func (h *WorkingHoursHandler) ListExceptions(c *gin.Context) {
	p, ok := h.professional(c)
	if !ok {
		return
	}

	list, err := h.admin.ListExceptions(c.Request.Context(), p.ID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_exceptions")
		return
	}

	httpresp.List(c, list)
}

func (h *WorkingHoursHandler) CreateException(c *gin.Context) {
	p, ok := h.professional(c)
	if !ok {
		return
	}

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ex := models.ScheduleException{
		ProfessionalID: p.ID,
		Kind:           req.Kind,
		Weekday:        req.Weekday,
		Start:          req.Start,
		End:            req.End,
		Reason:         req.Reason,
	}

	// Data de calendário: sempre meia-noite UTC.
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httperr.FromError(c, domain.ErrInvalidDate, "invalid_date")
			return
		}
		ex.Date = &d
	}

	if err := domain.ValidateException(&ex); err != nil {
		httperr.FromError(c, err, "invalid_exception")
		return
	}

	if err := h.admin.CreateException(c.Request.Context(), &ex); err != nil {
		httperr.FromError(c, err, "failed_to_create_exception")
		return
	}

	h.record(c, "schedule_exception_created", p.ID, ex)

	httpresp.Created(c, ex)
}

func (h *WorkingHoursHandler) record(c *gin.Context, action string, professionalID uint, meta any) {
	actor := middleware.ActorFrom(c)
	userID := actor.UserID

	h.audit.Dispatch(audit.Event{
		AccountID: actor.AccountID,
		UserID:    &userID,
		Action:    action,
		Entity:    "professional",
		EntityID:  &professionalID,
		Metadata:  meta,
	})
}

