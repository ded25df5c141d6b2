package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barbeariahub/api/internal/authz"
)

// RequireCapability roda depois do AuthMiddleware e rejeita a rota
// inteira quando o papel do usuário não cobre a ação.
func RequireCapability(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		roleStr, _ := role.(string)

		if !authz.Can(roleStr, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error_code": "insufficient_role",
				"message":    "Seu papel não permite esta operação.",
			})
			return
		}

		c.Next()
	}
}
