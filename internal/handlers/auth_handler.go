package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/authz"
	"github.com/barbeariahub/api/internal/config"
	"github.com/barbeariahub/api/internal/mail"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
	"github.com/barbeariahub/api/internal/validators"
)

const confirmationTTL = 48 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	mailer mail.Sender
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer mail.Sender) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, mailer: mailer}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbeariaName  string `json:"barbearia_name" binding:"required"`
	BarbeariaSlug  string `json:"barbearia_slug" binding:"required"`
	BarbeariaPhone string `json:"barbearia_phone"`
	BarbeariaCity  string `json:"barbearia_city" binding:"required"`
	BarbeariaState string `json:"barbearia_state" binding:"required"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BarbeariaSlug))

	var count int64
	h.db.Model(&models.Barbearia{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	email := validators.NormalizeEmail(req.Email)

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	shop := models.Barbearia{
		Name:     req.BarbeariaName,
		Slug:     slug,
		Phone:    req.BarbeariaPhone,
		City:     req.BarbeariaCity,
		State:    strings.ToUpper(strings.TrimSpace(req.BarbeariaState)),
		Active:   true,
		Timezone: timezone.DefaultTimezone,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barbearia"})
		return
	}

	user := models.User{
		BarbeariaID:  shop.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         authz.RoleAdmin,
		Active:       true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	h.db.Model(&models.Barbearia{}).
		Where("id = ?", shop.ID).
		Update("created_by", user.ID)

	if err := h.issueConfirmation(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_send_confirmation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"barbearia_id": user.BarbeariaID,
		},
		"barbearia": gin.H{
			"id":    shop.ID,
			"name":  shop.Name,
			"slug":  shop.Slug,
			"city":  shop.City,
			"state": shop.State,
		},
		"message": "Cadastro criado. Confirme seu e-mail para entrar.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Preload("Barbearia").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if !user.EmailConfirmed {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email_not_confirmed"})
		return
	}

	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_inactive"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"role":         user.Role,
			"barbearia_id": user.BarbeariaID,
		},
		"barbearia": gin.H{
			"id":    user.Barbearia.ID,
			"name":  user.Barbearia.Name,
			"slug":  user.Barbearia.Slug,
			"city":  user.Barbearia.City,
			"state": user.Barbearia.State,
		},
		"token": token,
	})
}

// ConfirmEmail é a rota de pouso do link enviado no cadastro.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_token"})
		return
	}

	var conf models.EmailConfirmation
	if err := h.db.Where("token = ?", token).First(&conf).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid_token"})
		return
	}

	if conf.UsedAt != nil {
		c.JSON(http.StatusOK, gin.H{"status": "already_confirmed"})
		return
	}

	if timezone.Now().After(conf.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token_expired"})
		return
	}

	now := timezone.Now()
	conf.UsedAt = &now

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&conf).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", conf.UserID).
			Update("email_confirmed", true).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_confirm_email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	var req ResendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		// não revela se o e-mail existe
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if user.EmailConfirmed {
		c.JSON(http.StatusOK, gin.H{"status": "already_confirmed"})
		return
	}

	if err := h.issueConfirmation(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_send_confirmation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) issueConfirmation(c *gin.Context, user *models.User) error {
	conf := models.EmailConfirmation{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: timezone.Now().Add(confirmationTTL),
	}

	if err := h.db.Create(&conf).Error; err != nil {
		return err
	}

	link := fmt.Sprintf("%s?token=%s", h.config.EmailConfirmBaseURL, conf.Token)
	return h.mailer.SendConfirmation(c.Request.Context(), user.Email, user.Name, link)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":         user.ID,
		"barbeariaId": user.BarbeariaID,
		"role":        user.Role,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
