package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/authz"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/httpresp"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// targetProfessional resolve de quem é a grade: o próprio usuário, ou
// outro membro via ?professional_id= (apenas admin).
func (h *WorkingHoursHandler) targetProfessional(c *gin.Context) (uint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	pid := c.Query("professional_id")
	if pid == "" {
		return userID, true
	}

	professionalID, err := parseQueryUint(c, "professional_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
		return 0, false
	}

	if professionalID != userID && role != authz.RoleAdmin {
		httperr.Forbidden(c, "insufficient_role", "Seu papel não permite esta operação.")
		return 0, false
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND barbearia_id = ?", professionalID, barbeariaID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return 0, false
	}

	return professionalID, true
}

func (h *WorkingHoursHandler) List(c *gin.Context) {
	professionalID, ok := h.targetProfessional(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_list_working_hours", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, hours)
}

type WorkingHoursEntry struct {
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Active     bool   `json:"active"`
}

type ReplaceWorkingHoursRequest struct {
	Hours []WorkingHoursEntry `json:"hours" binding:"required,dive"`
}

func validHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// Replace troca a grade semanal inteira de uma vez.
func (h *WorkingHoursHandler) Replace(c *gin.Context) {
	professionalID, ok := h.targetProfessional(c)
	if !ok {
		return
	}

	var req ReplaceWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	for _, e := range req.Hours {
		if e.Weekday < 0 || e.Weekday > 6 || seen[e.Weekday] {
			httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido ou repetido.")
			return
		}
		seen[e.Weekday] = true

		if !e.Active {
			continue
		}
		if !validHM(e.StartTime) || !validHM(e.EndTime) {
			httperr.BadRequest(c, "invalid_hours", "Horário inválido.")
			return
		}
		if e.LunchStart != "" || e.LunchEnd != "" {
			if !validHM(e.LunchStart) || !validHM(e.LunchEnd) {
				httperr.BadRequest(c, "invalid_hours", "Horário de almoço inválido.")
				return
			}
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		for _, e := range req.Hours {
			wh := models.WorkingHours{
				ProfessionalID: professionalID,
				Weekday:        e.Weekday,
				StartTime:      e.StartTime,
				EndTime:        e.EndTime,
				LunchStart:     e.LunchStart,
				LunchEnd:       e.LunchEnd,
				Active:         e.Active,
			}
			if err := tx.Create(&wh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	h.List(c)
}
