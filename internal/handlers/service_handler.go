package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/cache"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, cc *cache.Cache, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cc, audit: audit}
}

// List aceita ?type=servico|produto e ?active=true|false.
func (h *ServiceHandler) List(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	q := h.db.Where("barbearia_id = ?", barbeariaID)

	if t := c.Query("type"); t != "" {
		if t != models.ServiceTypeServico && t != models.ServiceTypeProduto {
			httperr.BadRequest(c, "invalid_type", "Tipo inválido.")
			return
		}
		q = q.Where("type = ?", t)
	}

	if active := c.Query("active"); active != "" {
		q = q.Where("active = ?", active == "true")
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

type ServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	DurationMin int             `json:"duration_min"`
	Stock       *int            `json:"stock"`
	Active      *bool           `json:"active"`
}

func (req *ServiceRequest) validate(c *gin.Context) bool {
	if req.Type == "" {
		req.Type = models.ServiceTypeServico
	}
	if req.Type != models.ServiceTypeServico && req.Type != models.ServiceTypeProduto {
		httperr.BadRequest(c, "invalid_type", "Tipo inválido.")
		return false
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "Preço inválido.")
		return false
	}
	if req.Type == models.ServiceTypeServico && req.DurationMin <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
		return false
	}
	if req.Stock != nil && *req.Stock < 0 {
		httperr.BadRequest(c, "invalid_stock", "Estoque inválido.")
		return false
	}
	return true
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !req.validate(c) {
		return
	}

	svc := models.Service{
		BarbeariaID: barbeariaID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Stock:       req.Stock,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "services")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "service_created",
		Entity:      "service",
		EntityID:    &svc.ID,
	})

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !req.validate(c) {
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Type = req.Type
	svc.Price = req.Price
	svc.DurationMin = req.DurationMin
	svc.Stock = req.Stock
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "services")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "service_updated",
		Entity:      "service",
		EntityID:    &svc.ID,
	})

	c.JSON(200, svc)
}

// Deactivate desativa em vez de excluir: vendas e agendamentos antigos
// continuam apontando para o registro.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	res := h.db.Model(&models.Service{}).
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao desativar serviço.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "services")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "service_deactivated",
		Entity:      "service",
		EntityID:    &id,
	})

	c.Status(204)
}
