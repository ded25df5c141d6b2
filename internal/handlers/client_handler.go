package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/cache"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/storage"
	"github.com/barbeariahub/api/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, media *storage.MediaStore, cc *cache.Cache, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, media: media, cache: cc, audit: audit}
}

// List aceita ?search= por nome ou telefone.
func (h *ClientHandler) List(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	q := h.db.Where("barbearia_id = ?", barbeariaID)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	c.JSON(200, client)
}

type ClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
	Notes     string `json:"notes"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client := models.Client{
		BarbeariaID: barbeariaID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       validators.NormalizeEmail(req.Email),
		Notes:       req.Notes,
	}

	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
		client.BirthDate = &bd
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "clients")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "client_created",
		Entity:      "client",
		EntityID:    &client.ID,
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = validators.NormalizeEmail(req.Email)
	client.Notes = req.Notes

	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
		client.BirthDate = &bd
	} else {
		client.BirthDate = nil
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "clients")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "client_updated",
		Entity:      "client",
		EntityID:    &client.ID,
	})

	c.JSON(200, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	res := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		Delete(&models.Client{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "clients")
	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      "client_deleted",
		Entity:      "client",
		EntityID:    &id,
	})

	c.Status(204)
}

func (h *ClientHandler) UploadAvatar(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

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

	url, err := h.media.UploadImage(c.Request.Context(), "avatars", src)
	if err != nil {
		if err == storage.ErrInvalidImage {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "upload_failed", "Erro ao subir a imagem.")
		return
	}

	if err := h.db.Model(&client).Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao salvar o avatar.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), "clients")

	c.JSON(200, gin.H{"avatar_url": url})
}
