package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
)

const auditLogsPageSize = 50

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List devolve a trilha de auditoria, mais recente primeiro.
// ?action= e ?entity= filtram; ?page= pagina.
func (h *AuditLogsHandler) List(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	q := h.db.Where("barbearia_id = ?", barbeariaID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(auditLogsPageSize).
		Offset((page - 1) * auditLogsPageSize).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Erro ao listar a auditoria.")
		return
	}

	httpresp.List(c, logs)
}
