package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/barbeariahub/api/internal/cache"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	ucCheckout "github.com/barbeariahub/api/internal/usecase/checkout"
)

// CheckoutHandler expõe o fluxo de pagamento online: sessão de checkout
// hospedado, confirmação no retorno e cobrança PIX.
type CheckoutHandler struct {
	cache     *cache.Cache
	createUC  *ucCheckout.CreateSession
	confirmUC *ucCheckout.ConfirmPayment
	pixUC     *ucCheckout.CreatePixCharge
}

func NewCheckoutHandler(
	cc *cache.Cache,
	createUC *ucCheckout.CreateSession,
	confirmUC *ucCheckout.ConfirmPayment,
	pixUC *ucCheckout.CreatePixCharge,
) *CheckoutHandler {
	return &CheckoutHandler{
		cache:     cc,
		createUC:  createUC,
		confirmUC: confirmUC,
		pixUC:     pixUC,
	}
}

type CreateSessionRequest struct {
	ClientID       uint   `json:"client_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), ucCheckout.CreateSessionInput{
		BarbeariaID:    barbeariaID,
		UserID:         userID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// Confirm é a rota pública de retorno do checkout: o front chama com o
// session_id da URL de sucesso. Reconfirmar a mesma sessão é seguro.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		var body struct {
			SessionID string `json:"session_id"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			sessionID = body.SessionID
		}
	}

	out, err := h.confirmUC.Execute(c.Request.Context(), sessionID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if out.Success && out.Appointment != nil {
		h.cache.Invalidate(c.Request.Context(), "appointments")
	}

	c.JSON(200, out)
}

type CreatePixChargeRequest struct {
	ClientID    uint            `json:"client_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

func (h *CheckoutHandler) CreatePixCharge(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	if h.pixUC == nil {
		httperr.BadGateway(c, "pix_unavailable", "PIX não está configurado.")
		return
	}

	var req CreatePixChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.pixUC.Execute(c.Request.Context(), ucCheckout.CreatePixChargeInput{
		BarbeariaID: barbeariaID,
		UserID:      userID,
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, out)
}
