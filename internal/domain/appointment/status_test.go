package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
)

func TestCanTransition_Progressao(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusAgendado, StatusConfirmado, true},
		{StatusConfirmado, StatusEmAndamento, true},
		{StatusEmAndamento, StatusConcluido, true},

		// pular etapas não é permitido
		{StatusAgendado, StatusEmAndamento, false},
		{StatusAgendado, StatusConcluido, false},
		{StatusConfirmado, StatusConcluido, false},

		// não anda para trás
		{StatusConfirmado, StatusAgendado, false},
		{StatusConcluido, StatusEmAndamento, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestCanTransition_Cancelamento(t *testing.T) {
	// cancela de qualquer estado não terminal
	for _, from := range []Status{StatusAgendado, StatusConfirmado, StatusEmAndamento} {
		assert.NoError(t, CanTransition(from, StatusCancelado), "de %s", from)
	}

	// estados terminais não cancelam
	assert.Error(t, CanTransition(StatusConcluido, StatusCancelado))
	assert.Error(t, CanTransition(StatusCancelado, StatusCancelado))
}

func TestCanTransition_StatusInvalido(t *testing.T) {
	err := CanTransition("qualquer", StatusConfirmado)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestTransition_MarcaTimestamps(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusEmAndamento)}
	require.NoError(t, Transition(ap, StatusConcluido, now))
	assert.Equal(t, string(StatusConcluido), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)
	assert.Nil(t, ap.CancelledAt)

	ap = &models.Appointment{Status: string(StatusAgendado)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelado), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestTransition_EstadoInvalidoNaoAltera(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConcluido)}

	err := Transition(ap, StatusCancelado, time.Now())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(StatusConcluido), ap.Status)
	assert.Nil(t, ap.CancelledAt)
}
