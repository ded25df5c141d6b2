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

// CashFlowHandler cobre os lançamentos manuais de caixa (entradas e
// saídas fora das vendas: aluguel, contas, aportes).
type CashFlowHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewCashFlowHandler(db *gorm.DB, cc *cache.Cache, audit *audit.Dispatcher) *CashFlowHandler {
	return &CashFlowHandler{db: db, cache: cc, audit: audit}
}

// List aceita ?from=&to= e ?type=entrada|saida.
func (h *CashFlowHandler) List(c *gin.Context) {
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
		Where("barbearia_id = ?", barbeariaID).
		Where("created_at >= ? AND created_at < ?", start, end)

	if t := c.Query("type"); t != "" {
		if t != models.CashTransactionEntrada && t != models.CashTransactionSaida {
			httperr.BadRequest(c, "invalid_type", "Tipo inválido.")
			return
		}
		q = q.Where("type = ?", t)
	}

	var txs []models.CashTransaction
	if err := q.Order("created_at DESC").Find(&txs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar lançamentos.")
		return
	}

	httpresp.List(c, txs)
}

type CashTransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description" binding:"required"`
}

func (req *CashTransactionRequest) validate(c *gin.Context) bool {
	if req.Type != models.CashTransactionEntrada && req.Type != models.CashTransactionSaida {
		httperr.BadRequest(c, "invalid_type", "Tipo inválido.")
		return false
	}
	if !req.Amount.IsPositive() {
		httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
		return false
	}
	return true
}

func (h *CashFlowHandler) Create(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !req.validate(c) {
		return
	}

	tx := models.CashTransaction{
		BarbeariaID: barbeariaID,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}

	if err := h.db.Create(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_create_transaction", "Erro ao criar lançamento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "cashflow")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "cash_transaction_created",
		Entity:      "cash_transaction",
		EntityID:    &tx.ID,
	})

	httpresp.Created(c, tx)
}

func (h *CashFlowHandler) Update(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var tx models.CashTransaction
	if err := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		First(&tx).Error; err != nil {
		httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
		return
	}

	var req CashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !req.validate(c) {
		return
	}

	tx.Type = req.Type
	tx.Amount = req.Amount
	tx.Category = req.Category
	tx.Description = req.Description

	if err := h.db.Save(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "Erro ao atualizar lançamento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "cashflow")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "cash_transaction_updated",
		Entity:      "cash_transaction",
		EntityID:    &tx.ID,
	})

	c.JSON(200, tx)
}

func (h *CashFlowHandler) Delete(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	res := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		Delete(&models.CashTransaction{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_transaction", "Erro ao excluir lançamento.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "cashflow")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "cash_transaction_deleted",
		Entity:      "cash_transaction",
		EntityID:    &id,
	})

	c.Status(204)
}

// Summary soma entradas, saídas e saldo do período, incluindo as vendas
// como entrada.
func (h *CashFlowHandler) Summary(c *gin.Context) {
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

	var txs []models.CashTransaction
	if err := h.db.
		Where("barbearia_id = ?", barbeariaID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&txs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "Erro ao calcular resumo.")
		return
	}

	var sales []models.Sale
	if err := h.db.
		Where("barbearia_id = ?", barbeariaID).
		Where("payment_date >= ? AND payment_date < ?", start, end).
		Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Erro ao calcular resumo.")
		return
	}

	entradas := decimal.Zero
	saidas := decimal.Zero

	for _, tx := range txs {
		if tx.Type == models.CashTransactionEntrada {
			entradas = entradas.Add(tx.Amount)
		} else {
			saidas = saidas.Add(tx.Amount)
		}
	}

	salesTotal := decimal.Zero
	for _, s := range sales {
		salesTotal = salesTotal.Add(s.TotalAmount)
	}

	entradas = entradas.Add(salesTotal)

	c.JSON(200, gin.H{
		"entradas":    entradas,
		"saidas":      saidas,
		"vendas":      salesTotal,
		"saldo":       entradas.Sub(saidas),
		"period_from": start.Format("2006-01-02"),
		"period_to":   end.AddDate(0, 0, -1).Format("2006-01-02"),
	})
}
