package authz

// Papéis espelham o enum user_role do banco
const (
	RoleAdmin         = "admin"
	RoleBarbeiro      = "barbeiro"
	RoleRecepcionista = "recepcionista"
)

type Action string

const (
	ActionManageBarbearia    Action = "barbearia:manage"
	ActionManageTeam         Action = "team:manage"
	ActionManageServices     Action = "services:manage"
	ActionViewServices       Action = "services:view"
	ActionManageClients      Action = "clients:manage"
	ActionManageAppointments Action = "appointments:manage"
	ActionRegisterSales      Action = "sales:register"
	ActionManageCashFlow     Action = "cashflow:manage"
	ActionViewReports        Action = "reports:view"
)

// Tabela explícita de capacidades por papel. Avaliada uma vez por rota,
// no lugar de checagens de papel espalhadas pelos handlers.
var capabilities = map[string]map[Action]bool{
	RoleAdmin: {
		ActionManageBarbearia:    true,
		ActionManageTeam:         true,
		ActionManageServices:     true,
		ActionViewServices:       true,
		ActionManageClients:      true,
		ActionManageAppointments: true,
		ActionRegisterSales:      true,
		ActionManageCashFlow:     true,
		ActionViewReports:        true,
	},
	RoleBarbeiro: {
		ActionViewServices:       true,
		ActionManageClients:      true,
		ActionManageAppointments: true,
		ActionRegisterSales:      true,
	},
	RoleRecepcionista: {
		ActionViewServices:       true,
		ActionManageClients:      true,
		ActionManageAppointments: true,
		ActionRegisterSales:      true,
		ActionManageCashFlow:     true,
	},
}

func IsValidRole(role string) bool {
	_, ok := capabilities[role]
	return ok
}

func Can(role string, action Action) bool {
	caps, ok := capabilities[role]
	if !ok {
		return false
	}
	return caps[action]
}
