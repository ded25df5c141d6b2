package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbeariahub/api/internal/audit"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
)

func TestTransitionAppointment_Confirma(t *testing.T) {
	repo := &fakeRepo{
		shop: &models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo"},
		appointment: &models.Appointment{
			ID:          10,
			BarbeariaID: 1,
			Status:      string(domain.StatusAgendado),
		},
	}

	uc := NewTransitionAppointment(repo, audit.NewNop())

	ap, err := uc.Execute(context.Background(), 1, 9, 10, domain.StatusConfirmado)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmado), ap.Status)
	require.NotNil(t, repo.updated)
	assert.Equal(t, ap, repo.updated)
}

func TestTransitionAppointment_CancelaEMarcaHorario(t *testing.T) {
	repo := &fakeRepo{
		shop: &models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo"},
		appointment: &models.Appointment{
			ID:          10,
			BarbeariaID: 1,
			Status:      string(domain.StatusConfirmado),
		},
	}

	uc := NewTransitionAppointment(repo, audit.NewNop())

	ap, err := uc.Execute(context.Background(), 1, 9, 10, domain.StatusCancelado)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelado), ap.Status)
	assert.NotNil(t, ap.CancelledAt)
}

func TestTransitionAppointment_NaoEncontrado(t *testing.T) {
	repo := &fakeRepo{
		shop: &models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo"},
	}

	uc := NewTransitionAppointment(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), 1, 9, 99, domain.StatusConfirmado)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestTransitionAppointment_PuloDeEtapaNaoPersiste(t *testing.T) {
	repo := &fakeRepo{
		shop: &models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo"},
		appointment: &models.Appointment{
			ID:          10,
			BarbeariaID: 1,
			Status:      string(domain.StatusAgendado),
		},
	}

	uc := NewTransitionAppointment(repo, audit.NewNop())

	_, err := uc.Execute(context.Background(), 1, 9, 10, domain.StatusConcluido)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Nil(t, repo.updated)
}
