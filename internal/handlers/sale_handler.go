package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/cache"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
	ucSale "github.com/barbeariahub/api/internal/usecase/sale"
)

type SaleHandler struct {
	db       *gorm.DB
	cache    *cache.Cache
	createUC *ucSale.CreateSale
}

func NewSaleHandler(db *gorm.DB, cc *cache.Cache, createUC *ucSale.CreateSale) *SaleHandler {
	return &SaleHandler{db: db, cache: cc, createUC: createUC}
}

type CreateSaleRequest struct {
	ProfessionalID uint               `json:"professional_id"`
	ClientID       *uint              `json:"client_id"`
	PaymentMethod  string             `json:"payment_method" binding:"required"`
	Notes          string             `json:"notes"`
	Items          []ucSale.ItemInput `json:"items" binding:"required,dive"`
}

func (h *SaleHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professionalID := req.ProfessionalID
	if professionalID == 0 {
		professionalID = userID
	}

	sale, err := h.createUC.Execute(c.Request.Context(), ucSale.CreateSaleInput{
		BarbeariaID:    barbeariaID,
		UserID:         userID,
		ProfessionalID: professionalID,
		ClientID:       req.ClientID,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		Items:          req.Items,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), "sales")
	// Venda de produto mexe no estoque
	h.cache.Invalidate(c.Request.Context(), "services")

	httpresp.Created(c, sale)
}

// List aceita ?from=2006-01-02&to=2006-01-02 e ?professional_id=.
func (h *SaleHandler) List(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var shop models.Barbearia
	if err := h.db.First(&shop, barbeariaID).Error; err != nil {
		httperr.Internal(c, "barbearia_not_found", "Barbearia não encontrada.")
		return
	}

	start, end, ok := parsePeriod(c, shop.Timezone)
	if !ok {
		return
	}

	q := h.db.
		Preload("Items").
		Preload("Professional").
		Preload("Client").
		Where("barbearia_id = ?", barbeariaID).
		Where("payment_date >= ? AND payment_date < ?", start, end)

	if pid := c.Query("professional_id"); pid != "" {
		q = q.Where("professional_id = ?", pid)
	}

	var sales []models.Sale
	if err := q.Order("payment_date DESC").Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Erro ao listar vendas.")
		return
	}

	httpresp.List(c, sales)
}

// parsePeriod lê ?from e ?to (inclusivo) no fuso da barbearia. Sem
// parâmetros, devolve o mês corrente.
func parsePeriod(c *gin.Context, tz string) (time.Time, time.Time, bool) {
	loc := timezone.Location(tz)

	from := c.Query("from")
	to := c.Query("to")

	if from == "" && to == "" {
		now := timezone.NowIn(tz)
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), true
	}

	// Limites independentes: só from vai até hoje, só to começa aberto.
	var start, end time.Time

	if from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_period", "Período inválido.")
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}

	if to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_period", "Período inválido.")
			return time.Time{}, time.Time{}, false
		}
		end = parsed.AddDate(0, 0, 1)
	} else {
		now := timezone.NowIn(tz)
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	}

	if end.Before(start) {
		httperr.BadRequest(c, "invalid_period", "Período inválido.")
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
