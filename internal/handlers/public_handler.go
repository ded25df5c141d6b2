package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/cache"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
	ucAppointment "github.com/barbeariahub/api/internal/usecase/appointment"
)

// PublicHandler serve o diretório de barbearias e o fluxo de agendamento
// sem login do cliente final.
type PublicHandler struct {
	db    *gorm.DB
	cache *cache.Cache

	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	cc *cache.Cache,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		cache:          cc,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

type publicShop struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	State   string `json:"state"`
	LogoURL string `json:"logo_url"`
}

// Directory lista as barbearias ativas; ?city= e ?state= filtram.
func (h *PublicHandler) Directory(c *gin.Context) {
	q := h.db.Model(&models.Barbearia{}).Where("active = ?", true)

	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("city ILIKE ?", "%"+city+"%")
	}
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		q = q.Where("state = ?", strings.ToUpper(state))
	}

	var shops []models.Barbearia
	if err := q.Order("name ASC").Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbearias", "Erro ao listar barbearias.")
		return
	}

	out := make([]publicShop, 0, len(shops))
	for _, s := range shops {
		out = append(out, publicShop{
			Name:    s.Name,
			Slug:    s.Slug,
			Phone:   s.Phone,
			City:    s.City,
			State:   s.State,
			LogoURL: s.LogoURL,
		})
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbearia, bool) {
	slug := c.Param("slug")

	var shop models.Barbearia
	if err := h.db.
		Where("slug = ? AND active = ?", slug, true).
		First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbearia_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

// Page devolve a página pública de uma barbearia: dados básicos,
// serviços agendáveis e profissionais ativos.
func (h *PublicHandler) Page(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barbearia_id = ? AND type = ? AND active = ?",
			shop.ID, models.ServiceTypeServico, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	var professionals []models.User
	if err := h.db.
		Select("id", "name", "specialties", "avatar_url").
		Where("barbearia_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	type publicService struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		DurationMin int    `json:"duration_min"`
	}

	type publicProfessional struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Specialties string `json:"specialties"`
		AvatarURL   string `json:"avatar_url"`
	}

	svcOut := make([]publicService, 0, len(services))
	for _, s := range services {
		svcOut = append(svcOut, publicService{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price.StringFixed(2),
			DurationMin: s.DurationMin,
		})
	}

	profOut := make([]publicProfessional, 0, len(professionals))
	for _, p := range professionals {
		profOut = append(profOut, publicProfessional{
			ID:          p.ID,
			Name:        p.Name,
			Specialties: p.Specialties,
			AvatarURL:   p.AvatarURL,
		})
	}

	c.JSON(200, gin.H{
		"barbearia": publicShop{
			Name:    shop.Name,
			Slug:    shop.Slug,
			Phone:   shop.Phone,
			City:    shop.City,
			State:   shop.State,
			LogoURL: shop.LogoURL,
		},
		"services":      svcOut,
		"professionals": profOut,
	})
}

// Availability é a versão pública da consulta de horários livres.
// Query: ?professional_id=&service_id=&date=2006-01-02
func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	professionalID, err1 := parseQueryUint(c, "professional_id")
	serviceID, err2 := parseQueryUint(c, "service_id")
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		c.Query("date"),
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbeariaID:    shop.ID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

type PublicBookingRequest struct {
	ProfessionalID uint `json:"professional_id" binding:"required"`
	ServiceID      uint `json:"service_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

// Book cria um agendamento vindo da página pública. Nasce como
// "agendado"; a equipe confirma depois.
func (h *PublicHandler) Book(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// O profissional precisa ser da barbearia da URL
	var prof models.User
	if err := h.db.
		Where("id = ? AND barbearia_id = ? AND active = ?",
			req.ProfessionalID, shop.ID, true).
		First(&prof).Error; err != nil {
		httperr.BadRequest(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbeariaID:    shop.ID,
		ProfessionalID: req.ProfessionalID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), "appointments")

	c.JSON(201, gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
	})
}
