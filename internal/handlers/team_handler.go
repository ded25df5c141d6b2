package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/authz"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/validators"
)

// TeamHandler administra os membros da equipe. Todas as rotas ficam
// atrás de RequireCapability(team:manage), restrita ao admin.
type TeamHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTeamHandler(db *gorm.DB, audit *audit.Dispatcher) *TeamHandler {
	return &TeamHandler{db: db, audit: audit}
}

func (h *TeamHandler) List(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var members []models.User
	if err := h.db.
		Where("barbearia_id = ?", barbeariaID).
		Order("name ASC").
		Find(&members).Error; err != nil {
		httperr.Internal(c, "failed_to_list_team", "Erro ao listar a equipe.")
		return
	}

	httpresp.List(c, members)
}

type CreateMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	Role        string `json:"role" binding:"required"`
	Specialties string `json:"specialties"`
}

func (h *TeamHandler) Create(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !authz.IsValidRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "Papel inválido.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar o usuário.")
		return
	}

	member := models.User{
		BarbeariaID:  barbeariaID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         req.Role,
		Specialties:  req.Specialties,
		Active:       true,
		// Criado pelo admin da barbearia, sem fluxo de confirmação
		EmailConfirmed: true,
	}

	if err := h.db.Create(&member).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar o usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &adminID,
		Action:      "team_member_created",
		Entity:      "user",
		EntityID:    &member.ID,
	})

	httpresp.Created(c, member)
}

type UpdateMemberRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
	Specialties *string `json:"specialties"`
	Active      *bool   `json:"active"`
}

func (h *TeamHandler) Update(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var member models.User
	if err := h.db.
		Where("id = ? AND barbearia_id = ?", id, barbeariaID).
		First(&member).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Role != nil {
		if !authz.IsValidRole(*req.Role) {
			httperr.BadRequest(c, "invalid_role", "Papel inválido.")
			return
		}
		// O admin não pode rebaixar a si mesmo e trancar a barbearia
		if member.ID == adminID && *req.Role != authz.RoleAdmin {
			httperr.BadRequest(c, "cannot_demote_self", "Você não pode rebaixar o próprio papel.")
			return
		}
		member.Role = *req.Role
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Specialties != nil {
		member.Specialties = *req.Specialties
	}
	if req.Active != nil {
		if member.ID == adminID && !*req.Active {
			httperr.BadRequest(c, "cannot_deactivate_self", "Você não pode desativar a própria conta.")
			return
		}
		member.Active = *req.Active
	}

	if err := h.db.Save(&member).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar o usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &adminID,
		Action:      "team_member_updated",
		Entity:      "user",
		EntityID:    &member.ID,
	})

	c.JSON(200, member)
}
