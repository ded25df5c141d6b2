package checkout

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barbeariahub/api/internal/audit"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/payment"
	"github.com/barbeariahub/api/internal/timezone"
)

type ConfirmOutput struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

// ConfirmPayment consulta a sessão no provedor e, se paga, grava o
// agendamento confirmado e o registro de pagamento. A operação é
// idempotente por session id: reconfirmar devolve o agendamento original.
type ConfirmPayment struct {
	store    Store
	provider payment.CheckoutProvider
	audit    *audit.Dispatcher
}

func NewConfirmPayment(
	store Store,
	provider payment.CheckoutProvider,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		store:    store,
		provider: provider,
		audit:    audit,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	sessionID string,
) (*ConfirmOutput, error) {

	if sessionID == "" {
		return nil, httperr.ErrBusiness("missing_session_id")
	}

	// Já confirmado antes: devolve o resultado original sem novos writes.
	if existing, err := uc.store.FindPaymentBySession(ctx, sessionID); err != nil {
		return nil, err
	} else if existing != nil {
		return uc.alreadyConfirmed(ctx, existing)
	}

	session, err := uc.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, httperr.ErrBusiness("payment_provider_error")
	}

	if !payment.IsPaid(session) {
		return &ConfirmOutput{
			Success: false,
			Message: "Pagamento não foi processado com sucesso.",
		}, nil
	}

	ap, err := uc.appointmentFromMetadata(ctx, session.Metadata)
	if err != nil {
		return nil, err
	}

	pay := &models.Payment{
		BarbeariaID: ap.BarbeariaID,
		SessionID:   sessionID,
		ClientID:    &ap.ClientID,
		Amount:      decimal.New(session.AmountTotal, -2),
		Method:      "stripe",
		Status:      models.PaymentStatusCompleted,
	}

	if err := uc.store.CreateAppointmentAndPayment(ctx, ap, pay); err != nil {
		// Confirmação concorrente perdeu a corrida no índice único:
		// trata como sucesso idempotente.
		if httperr.IsUniqueViolation(err) {
			existing, ferr := uc.store.FindPaymentBySession(ctx, sessionID)
			if ferr == nil && existing != nil {
				return uc.alreadyConfirmed(ctx, existing)
			}
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbeariaID: ap.BarbeariaID,
		Action:      "payment_confirmed",
		Entity:      "appointment",
		EntityID:    &ap.ID,
		Metadata:    map[string]string{"session_id": sessionID},
	})

	return &ConfirmOutput{
		Success:     true,
		Message:     "Agendamento confirmado e pagamento processado com sucesso!",
		Appointment: ap,
	}, nil
}

func (uc *ConfirmPayment) alreadyConfirmed(
	ctx context.Context,
	pay *models.Payment,
) (*ConfirmOutput, error) {

	out := &ConfirmOutput{
		Success: true,
		Message: "Pagamento já confirmado anteriormente.",
	}

	if pay.AppointmentID != nil {
		if ap, err := uc.store.GetAppointment(ctx, *pay.AppointmentID); err == nil {
			out.Appointment = ap
		}
	}

	return out, nil
}

func (uc *ConfirmPayment) appointmentFromMetadata(
	ctx context.Context,
	meta map[string]string,
) (*models.Appointment, error) {

	barbeariaID, err1 := parseID(meta["barbearia_id"])
	clientID, err2 := parseID(meta["client_id"])
	professionalID, err3 := parseID(meta["professional_id"])
	serviceID, err4 := parseID(meta["service_id"])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil, httperr.ErrBusiness("invalid_session_metadata")
	}

	shop, err := uc.store.GetBarbearia(ctx, barbeariaID)
	if err != nil {
		return nil, httperr.ErrBusiness("barbearia_not_found")
	}

	svc, err := uc.store.GetService(ctx, barbeariaID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	start, err := timezone.ParseDateTime(
		shop.Timezone,
		meta["scheduled_date"],
		meta["scheduled_time"],
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_session_metadata")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	return &models.Appointment{
		BarbeariaID:    barbeariaID,
		ProfessionalID: professionalID,
		ClientID:       clientID,
		ServiceID:      serviceID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.StatusConfirmado),
		Paid:           true,
		Notes:          meta["notes"],
	}, nil
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}
