package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/cache"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
	ucAppointment "github.com/barbeariahub/api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	cache *cache.Cache

	createUC       *ucAppointment.CreateAppointment
	transitionUC   *ucAppointment.TransitionAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	cc *cache.Cache,
	createUC *ucAppointment.CreateAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		cache:          cc,
		createUC:       createUC,
		transitionUC:   transitionUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID uint `json:"professional_id"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// Sem profissional explícito, o agendamento é do próprio usuário
	professionalID := req.ProfessionalID
	if professionalID == 0 {
		professionalID = userID
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbeariaID:    barbeariaID,
		ProfessionalID: professionalID,
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

	httpresp.Created(c, ap)
}

// ======================================================
// LIST (por dia ou por mês)
// ======================================================

// List aceita ?date=2006-01-02 ou ?month=2006-01, com filtro opcional
// ?professional_id=.
func (h *AppointmentHandler) List(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var shop models.Barbearia
	if err := h.db.First(&shop, barbeariaID).Error; err != nil {
		httperr.Internal(c, "barbearia_not_found", "Barbearia não encontrada.")
		return
	}
	loc := timezone.Location(shop.Timezone)

	var start, end time.Time

	switch {
	case c.Query("date") != "":
		day, err := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		start = day
		end = day.AddDate(0, 0, 1)

	case c.Query("month") != "":
		month, err := time.ParseInLocation("2006-01", c.Query("month"), loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "Mês inválido.")
			return
		}
		start = month
		end = month.AddDate(0, 1, 0)

	default:
		httperr.BadRequest(c, "missing_period", "Informe date ou month.")
		return
	}

	q := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where("barbearia_id = ?", barbeariaID).
		Where("start_time >= ? AND start_time < ?", start, end)

	if pid := c.Query("professional_id"); pid != "" {
		q = q.Where("professional_id = ?", pid)
	}

	var appointments []models.Appointment
	if err := q.Order("start_time ASC").Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, appointments)
}

// ======================================================
// STATUS (confirmar / iniciar / concluir / cancelar)
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.transitionUC.Execute(
		c.Request.Context(),
		barbeariaID,
		userID,
		id,
		domain.Status(req.Status),
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), "appointments")

	c.JSON(200, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability devolve os horários livres de um profissional em um dia,
// para um serviço. Query: ?professional_id=&service_id=&date=2006-01-02
func (h *AppointmentHandler) Availability(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	in, ok := h.parseAvailabilityQuery(c, barbeariaID)
	if !ok {
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *AppointmentHandler) parseAvailabilityQuery(
	c *gin.Context,
	barbeariaID uint,
) (domain.AvailabilityInput, bool) {

	var shop models.Barbearia
	if err := h.db.First(&shop, barbeariaID).Error; err != nil {
		httperr.Internal(c, "barbearia_not_found", "Barbearia não encontrada.")
		return domain.AvailabilityInput{}, false
	}

	professionalID, err1 := parseQueryUint(c, "professional_id")
	serviceID, err2 := parseQueryUint(c, "service_id")
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
		return domain.AvailabilityInput{}, false
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		c.Query("date"),
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return domain.AvailabilityInput{}, false
	}

	return domain.AvailabilityInput{
		BarbeariaID:    barbeariaID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	}, true
}
