package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/payment"
)

func sessionInput() CreateSessionInput {
	return CreateSessionInput{
		BarbeariaID:    1,
		UserID:         9,
		ClientID:       2,
		ProfessionalID: 3,
		ServiceID:      4,
		Date:           "2024-06-10",
		Time:           "14:00",
		Notes:          "primeira vez",
	}
}

func TestCreateSession_SemUsuario(t *testing.T) {
	store := new(mockStore)
	provider := new(mockProvider)
	uc := NewCreateSession(store, provider, audit.NewNop())

	in := sessionInput()
	in.UserID = 0

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "unauthorized"))
}

func TestCreateSession_MontaSessaoComMetadata(t *testing.T) {
	store := new(mockStore)
	provider := new(mockProvider)
	uc := NewCreateSession(store, provider, audit.NewNop())

	store.On("GetService", mock.Anything, uint(1), uint(4)).Return(&models.Service{
		ID:    4,
		Name:  "Corte",
		Price: decimal.RequireFromString("49.90"),
	}, nil)
	store.On("GetProfessional", mock.Anything, uint(1), uint(3)).
		Return(&models.User{ID: 3, Name: "João"}, nil)
	store.On("GetClient", mock.Anything, uint(1), uint(2)).
		Return(&models.Client{ID: 2, Email: "cliente@example.com"}, nil)

	provider.On("CreateSession", mock.Anything, mock.MatchedBy(func(in payment.CreateSessionInput) bool {
		return in.AmountCentavos == 4990 &&
			in.Title == "Corte - João" &&
			in.CustomerEmail == "cliente@example.com" &&
			in.Metadata["barbearia_id"] == "1" &&
			in.Metadata["service_id"] == "4" &&
			in.Metadata["scheduled_date"] == "2024-06-10" &&
			in.Metadata["scheduled_time"] == "14:00"
	})).Return(&payment.CheckoutSession{
		ID:  "cs_new",
		URL: "https://checkout.example/cs_new",
	}, nil)

	out, err := uc.Execute(context.Background(), sessionInput())
	require.NoError(t, err)

	assert.Equal(t, "cs_new", out.SessionID)
	assert.Equal(t, "https://checkout.example/cs_new", out.RedirectURL)
	assert.True(t, out.Amount.Equal(decimal.RequireFromString("49.90")))
}

func TestCreateSession_ProvedorIndisponivel(t *testing.T) {
	store := new(mockStore)
	provider := new(mockProvider)
	uc := NewCreateSession(store, provider, audit.NewNop())

	store.On("GetService", mock.Anything, uint(1), uint(4)).
		Return(&models.Service{ID: 4, Price: decimal.RequireFromString("10.00")}, nil)
	store.On("GetProfessional", mock.Anything, uint(1), uint(3)).
		Return(&models.User{ID: 3}, nil)
	store.On("GetClient", mock.Anything, uint(1), uint(2)).
		Return(&models.Client{ID: 2}, nil)
	provider.On("CreateSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	_, err := uc.Execute(context.Background(), sessionInput())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "payment_provider_error"))
}
