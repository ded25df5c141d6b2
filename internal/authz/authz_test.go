package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan_AdminTemTudo(t *testing.T) {
	actions := []Action{
		ActionManageBarbearia,
		ActionManageTeam,
		ActionManageServices,
		ActionViewServices,
		ActionManageClients,
		ActionManageAppointments,
		ActionRegisterSales,
		ActionManageCashFlow,
		ActionViewReports,
	}

	for _, a := range actions {
		assert.True(t, Can(RoleAdmin, a), "admin deveria poder %s", a)
	}
}

func TestCan_BarbeiroNaoAdministra(t *testing.T) {
	assert.True(t, Can(RoleBarbeiro, ActionManageAppointments))
	assert.True(t, Can(RoleBarbeiro, ActionRegisterSales))
	assert.True(t, Can(RoleBarbeiro, ActionViewServices))

	assert.False(t, Can(RoleBarbeiro, ActionManageServices))
	assert.False(t, Can(RoleBarbeiro, ActionManageTeam))
	assert.False(t, Can(RoleBarbeiro, ActionManageBarbearia))
	assert.False(t, Can(RoleBarbeiro, ActionViewReports))
	assert.False(t, Can(RoleBarbeiro, ActionManageCashFlow))
}

func TestCan_RecepcionistaMexeNoCaixa(t *testing.T) {
	assert.True(t, Can(RoleRecepcionista, ActionManageCashFlow))
	assert.True(t, Can(RoleRecepcionista, ActionManageClients))

	assert.False(t, Can(RoleRecepcionista, ActionManageTeam))
	assert.False(t, Can(RoleRecepcionista, ActionViewReports))
}

func TestCan_PapelDesconhecido(t *testing.T) {
	assert.False(t, Can("", ActionViewServices))
	assert.False(t, Can("gerente", ActionViewServices))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleBarbeiro))
	assert.True(t, IsValidRole(RoleRecepcionista))
	assert.False(t, IsValidRole("gerente"))
}
