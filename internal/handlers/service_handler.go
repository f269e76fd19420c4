package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	catalog  domain.CatalogAdmin
	services domain.ServiceCatalog
}

func NewServiceHandler(catalog domain.CatalogAdmin, services domain.ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, services: services}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required,min=1"`
	Price       float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	activeOnly := strings.TrimSpace(c.Query("active")) == "true"

	list, err := h.catalog.ListServices(c.Request.Context(), actor.AccountID, activeOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, list)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleOwner {
		httperr.FromError(c, domain.ErrForbidden, "forbidden")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	svc := models.Service{
		AccountID:   actor.AccountID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.catalog.CreateService(c.Request.Context(), &svc); err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.Role != domain.RoleOwner {
		httperr.FromError(c, domain.ErrForbidden, "forbidden")
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	svc, err := h.services.GetService(c.Request.Context(), id)
	if err == nil && svc.AccountID != actor.AccountID {
		err = domain.ErrServiceNotFound
	}
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_service")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			httperr.FromError(c, domain.ErrInvalidDuration, "invalid_duration")
			return
		}
		svc.Duration = *req.Duration
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.catalog.UpdateService(c.Request.Context(), svc); err != nil {
		httperr.FromError(c, err, "failed_to_update_service")
		return
	}

	httpresp.OK(c, svc)
}
