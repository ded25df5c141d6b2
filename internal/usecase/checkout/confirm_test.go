package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barbeariahub/api/internal/audit"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/payment"
)

// ======================================================
// MOCKS
// ======================================================

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetBarbearia(ctx context.Context, id uint) (*models.Barbearia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barbearia), args.Error(1)
}

func (m *mockStore) GetService(ctx context.Context, barbeariaID, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, barbeariaID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *mockStore) GetProfessional(ctx context.Context, barbeariaID, professionalID uint) (*models.User, error) {
	args := m.Called(ctx, barbeariaID, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockStore) GetClient(ctx context.Context, barbeariaID, clientID uint) (*models.Client, error) {
	args := m.Called(ctx, barbeariaID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *mockStore) FindPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *mockStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *mockStore) CreateAppointmentAndPayment(ctx context.Context, ap *models.Appointment, pay *models.Payment) error {
	args := m.Called(ctx, ap, pay)
	if args.Error(0) == nil {
		ap.ID = 42
		pay.ID = 7
		pay.AppointmentID = &ap.ID
	}
	return args.Error(0)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) CreateSession(ctx context.Context, in payment.CreateSessionInput) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *mockProvider) RetrieveSession(ctx context.Context, id string) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

// ======================================================
// FIXTURES
// ======================================================

func paidSession(id string) *payment.CheckoutSession {
	return &payment.CheckoutSession{
		ID:            id,
		PaymentStatus: "paid",
		AmountTotal:   5000,
		Metadata: map[string]string{
			"barbearia_id":    "1",
			"client_id":       "2",
			"professional_id": "3",
			"service_id":      "4",
			"scheduled_date":  "2024-06-10",
			"scheduled_time":  "14:00",
			"notes":           "sem máquina",
		},
	}
}

func confirmFixture(t *testing.T) (*mockStore, *mockProvider, *ConfirmPayment) {
	t.Helper()
	store := new(mockStore)
	provider := new(mockProvider)
	uc := NewConfirmPayment(store, provider, audit.NewNop())
	return store, provider, uc
}

// ======================================================
// TESTS
// ======================================================

func TestConfirmPayment_SemSessionID(t *testing.T) {
	_, _, uc := confirmFixture(t)

	_, err := uc.Execute(context.Background(), "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "missing_session_id"))
}

func TestConfirmPayment_NaoPagoNaoGravaNada(t *testing.T) {
	store, provider, uc := confirmFixture(t)

	store.On("FindPaymentBySession", mock.Anything, "cs_1").Return(nil, nil)
	provider.On("RetrieveSession", mock.Anything, "cs_1").Return(&payment.CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: "unpaid",
	}, nil)

	out, err := uc.Execute(context.Background(), "cs_1")
	require.NoError(t, err)

	assert.False(t, out.Success)
	assert.Nil(t, out.Appointment)
	store.AssertNotCalled(t, "CreateAppointmentAndPayment",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_PagoCriaAgendamentoEPagamento(t *testing.T) {
	store, provider, uc := confirmFixture(t)

	store.On("FindPaymentBySession", mock.Anything, "cs_1").Return(nil, nil)
	provider.On("RetrieveSession", mock.Anything, "cs_1").Return(paidSession("cs_1"), nil)
	store.On("GetBarbearia", mock.Anything, uint(1)).
		Return(&models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo"}, nil)
	store.On("GetService", mock.Anything, uint(1), uint(4)).
		Return(&models.Service{ID: 4, DurationMin: 30}, nil)
	store.On("CreateAppointmentAndPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	out, err := uc.Execute(context.Background(), "cs_1")
	require.NoError(t, err)
	require.True(t, out.Success)
	require.NotNil(t, out.Appointment)

	ap := out.Appointment
	assert.Equal(t, string(domain.StatusConfirmado), ap.Status)
	assert.True(t, ap.Paid)
	assert.Equal(t, uint(1), ap.BarbeariaID)
	assert.Equal(t, uint(2), ap.ClientID)
	assert.Equal(t, uint(3), ap.ProfessionalID)
	assert.Equal(t, uint(4), ap.ServiceID)
	assert.Equal(t, "sem máquina", ap.Notes)
	assert.Equal(t, 30, int(ap.EndTime.Sub(ap.StartTime).Minutes()))

	createCall := store.Calls[len(store.Calls)-1]
	pay := createCall.Arguments.Get(2).(*models.Payment)
	assert.Equal(t, "cs_1", pay.SessionID)
	assert.Equal(t, models.PaymentStatusCompleted, pay.Status)
	assert.True(t, pay.Amount.Equal(decimal.RequireFromString("50.00")))
}

func TestConfirmPayment_ReconfirmacaoEhIdempotente(t *testing.T) {
	store, _, uc := confirmFixture(t)

	apID := uint(42)
	store.On("FindPaymentBySession", mock.Anything, "cs_1").Return(&models.Payment{
		ID:            7,
		SessionID:     "cs_1",
		AppointmentID: &apID,
		Status:        models.PaymentStatusCompleted,
	}, nil)
	store.On("GetAppointment", mock.Anything, apID).
		Return(&models.Appointment{ID: apID, Status: string(domain.StatusConfirmado)}, nil)

	out, err := uc.Execute(context.Background(), "cs_1")
	require.NoError(t, err)

	assert.True(t, out.Success)
	require.NotNil(t, out.Appointment)
	assert.Equal(t, apID, out.Appointment.ID)

	// nenhum write novo
	store.AssertNotCalled(t, "CreateAppointmentAndPayment",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_SessaoDesconhecida(t *testing.T) {
	store, provider, uc := confirmFixture(t)

	store.On("FindPaymentBySession", mock.Anything, "cs_x").Return(nil, nil)
	provider.On("RetrieveSession", mock.Anything, "cs_x").
		Return(nil, payment.ErrSessionNotFound)

	_, err := uc.Execute(context.Background(), "cs_x")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "session_not_found"))
}

func TestConfirmPayment_MetadataInvalida(t *testing.T) {
	store, provider, uc := confirmFixture(t)

	s := paidSession("cs_1")
	s.Metadata["barbearia_id"] = "não é número"

	store.On("FindPaymentBySession", mock.Anything, "cs_1").Return(nil, nil)
	provider.On("RetrieveSession", mock.Anything, "cs_1").Return(s, nil)

	_, err := uc.Execute(context.Background(), "cs_1")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_session_metadata"))
}
