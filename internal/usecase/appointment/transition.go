package appointment

import (
	"context"

	"github.com/barbeariahub/api/internal/audit"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
)

var transitionActions = map[domain.Status]string{
	domain.StatusConfirmado:  "appointment_confirmed",
	domain.StatusEmAndamento: "appointment_started",
	domain.StatusConcluido:   "appointment_completed",
	domain.StatusCancelado:   "appointment_cancelled",
}

// TransitionAppointment aplica mudanças manuais de status
// (confirmar, iniciar, concluir, cancelar).
type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	barbeariaID uint,
	userID uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbeariaByID(ctx, barbeariaID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarbearia(ctx, appointmentID, barbeariaID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Transition(ap, to, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbeariaID: barbeariaID,
		UserID:      &userID,
		Action:      transitionActions[to],
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	return ap, nil
}
