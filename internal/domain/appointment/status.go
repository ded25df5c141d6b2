package appointment

import "github.com/barbeariahub/api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusAgendado    Status = "agendado"
	StatusConfirmado  Status = "confirmado"
	StatusEmAndamento Status = "em_andamento"
	StatusConcluido   Status = "concluido"
	StatusCancelado   Status = "cancelado"
)

// Progressão manual: agendado -> confirmado -> em_andamento -> concluido.
// cancelado é alcançável de qualquer estado não terminal.
var next = map[Status]Status{
	StatusAgendado:    StatusConfirmado,
	StatusConfirmado:  StatusEmAndamento,
	StatusEmAndamento: StatusConcluido,
}

func IsValid(s Status) bool {
	switch s {
	case StatusAgendado, StatusConfirmado, StatusEmAndamento, StatusConcluido, StatusCancelado:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusConcluido || s == StatusCancelado
}

func CanTransition(from, to Status) error {
	if !IsValid(from) || !IsValid(to) {
		return httperr.ErrBusiness("invalid_status")
	}

	if to == StatusCancelado {
		if IsTerminal(from) {
			return httperr.ErrBusiness("invalid_state")
		}
		return nil
	}

	if next[from] != to {
		return httperr.ErrBusiness("invalid_state")
	}

	return nil
}

func InitialStatus() Status {
	return StatusAgendado
}
