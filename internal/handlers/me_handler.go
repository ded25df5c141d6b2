package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/storage"
)

type MeHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewMeHandler(db *gorm.DB, media *storage.MediaStore) *MeHandler {
	return &MeHandler{db: db, media: media}
}

func (h *MeHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Barbearia").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	c.JSON(200, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"phone":        user.Phone,
		"role":         user.Role,
		"specialties":  user.Specialties,
		"avatar_url":   user.AvatarURL,
		"barbearia_id": user.BarbeariaID,
		"barbearia": gin.H{
			"id":    user.Barbearia.ID,
			"name":  user.Barbearia.Name,
			"slug":  user.Barbearia.Slug,
			"city":  user.Barbearia.City,
			"state": user.Barbearia.State,
		},
	})
}

type UpdateMeRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Specialties *string `json:"specialties"`
}

func (h *MeHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Specialties != nil {
		user.Specialties = *req.Specialties
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar perfil.")
		return
	}

	c.JSON(200, user)
}

// UploadAvatar recebe multipart "file" e troca o avatar do usuário logado.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
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

	url, err := h.media.UploadImage(c.Request.Context(), "avatars", src)
	if err != nil {
		if err == storage.ErrInvalidImage {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "upload_failed", "Erro ao subir a imagem.")
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao salvar o avatar.")
		return
	}

	c.JSON(200, gin.H{"avatar_url": url})
}
