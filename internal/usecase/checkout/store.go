package checkout

import (
	"context"

	"github.com/barbeariahub/api/internal/models"
)

// Store é a porta de persistência do fluxo de checkout. Nada é gravado
// antes da confirmação do pagamento; a gravação final é transacional.
type Store interface {
	GetBarbearia(ctx context.Context, id uint) (*models.Barbearia, error)
	GetService(ctx context.Context, barbeariaID, serviceID uint) (*models.Service, error)
	GetProfessional(ctx context.Context, barbeariaID, professionalID uint) (*models.User, error)
	GetClient(ctx context.Context, barbeariaID, clientID uint) (*models.Client, error)

	// FindPaymentBySession retorna (nil, nil) quando não há registro.
	FindPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error)
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	CreateAppointmentAndPayment(ctx context.Context, ap *models.Appointment, pay *models.Payment) error
}
