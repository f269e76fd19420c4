package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ProfessionalHandler struct {
	catalog       domain.CatalogAdmin
	professionals domain.ProfessionalDirectory
}

func NewProfessionalHandler(catalog domain.CatalogAdmin, professionals domain.ProfessionalDirectory) *ProfessionalHandler {
	return &ProfessionalHandler{catalog: catalog, professionals: professionals}
}

type CreateProfessionalRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Timezone      string `json:"timezone"`
	UserAccountID *uint  `json:"user_account_id"`

	WorkingHours models.WorkingHoursSpec `json:"working_hours"`
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	list, err := h.catalog.ListProfessionals(c.Request.Context(), actor.AccountID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, list)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleOwner {
		httperr.FromError(c, domain.ErrForbidden, "forbidden")
		return
	}

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultName()
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	if err := domain.ValidateWorkingHours(req.WorkingHours); err != nil {
		httperr.FromError(c, err, "invalid_working_hours")
		return
	}

	p := models.Professional{
		AccountID:     actor.AccountID,
		UserAccountID: req.UserAccountID,
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Status:        models.ProfessionalActive,
		Timezone:      tz,
		WorkingHours:  datatypes.NewJSONType(domain.NormalizeWorkingHours(req.WorkingHours)),
	}

	if err := h.catalog.CreateProfessional(c.Request.Context(), &p); err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, p)
}

// Me devolve o Actor do token e, quando houver, o profissional vinculado.
func (h *ProfessionalHandler) Me(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	resp := gin.H{
		"user": gin.H{
			"id":           actor.UserID,
			"account_id":   actor.AccountID,
			"role":         actor.Role,
			"can_view_all": actor.CanViewAll,
		},
	}

	if actor.ProfessionalID != 0 {
		if p, err := h.professionals.GetProfessional(c.Request.Context(), actor.ProfessionalID); err == nil && p.AccountID == actor.AccountID {
			resp["professional"] = p
		}
	}

	c.JSON(http.StatusOK, resp)
}
