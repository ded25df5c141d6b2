package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/storage"
	"github.com/barbeariahub/api/internal/timezone"
)

type BarbeariaHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
	audit *audit.Dispatcher
}

func NewBarbeariaHandler(db *gorm.DB, media *storage.MediaStore, audit *audit.Dispatcher) *BarbeariaHandler {
	return &BarbeariaHandler{db: db, media: media, audit: audit}
}

func (h *BarbeariaHandler) Get(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var shop models.Barbearia
	if err := h.db.First(&shop, barbeariaID).Error; err != nil {
		httperr.NotFound(c, "barbearia_not_found", "Barbearia não encontrada.")
		return
	}

	c.JSON(200, shop)
}

type UpdateBarbeariaRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	Timezone          *string `json:"timezone"`
	Active            *bool   `json:"active"`
}

func (h *BarbeariaHandler) Update(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateBarbeariaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var shop models.Barbearia
	if err := h.db.First(&shop, barbeariaID).Error; err != nil {
		httperr.NotFound(c, "barbearia_not_found", "Barbearia não encontrada.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.City != nil {
		shop.City = *req.City
	}
	if req.State != nil {
		shop.State = *req.State
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima inválida.")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.Active != nil {
		shop.Active = *req.Active
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbearia", "Erro ao atualizar a barbearia.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "barbearia_updated",
		Entity:      "barbearia",
		EntityID:    &shop.ID,
	})

	c.JSON(200, shop)
}

func (h *BarbeariaHandler) UploadLogo(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo não enviado.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Arquivo inválido.")
		return
	}
	defer src.Close()

	url, err := h.media.UploadImage(c.Request.Context(), "logos", src)
	if err != nil {
		if err == storage.ErrInvalidImage {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "upload_failed", "Erro ao subir a imagem.")
		return
	}

	if err := h.db.Model(&models.Barbearia{}).
		Where("id = ?", barbeariaID).
		Update("logo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbearia", "Erro ao salvar o logo.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "barbearia_logo_updated",
		Entity:      "barbearia",
		EntityID:    &barbeariaID,
	})

	c.JSON(200, gin.H{"logo_url": url})
}
