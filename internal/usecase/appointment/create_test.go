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

func createFixture() (*fakeRepo, CreateAppointmentInput) {
	repo := &fakeRepo{
		shop: &models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo", MinAdvanceMinutes: 120},
		service: &models.Service{
			ID:          4,
			Type:        models.ServiceTypeServico,
			DurationMin: 45,
			Active:      true,
		},
	}

	in := CreateAppointmentInput{
		BarbeariaID:    1,
		ProfessionalID: 3,
		ClientName:     "Carlos",
		ClientPhone:    "11999990000",
		ServiceID:      4,
		Date:           "2030-01-15",
		Time:           "10:00",
		Notes:          "máquina 2",
	}

	return repo, in
}

func TestCreateAppointment_CriaComoAgendado(t *testing.T) {
	repo, in := createFixture()
	uc := NewCreateAppointment(repo, audit.NewNop())

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAgendado), ap.Status)
	assert.False(t, ap.Paid)
	assert.Equal(t, uint(1), ap.BarbeariaID)
	assert.Equal(t, uint(3), ap.ProfessionalID)
	assert.Equal(t, 45, int(ap.EndTime.Sub(ap.StartTime).Minutes()))
	assert.Equal(t, "máquina 2", ap.Notes)

	require.NotNil(t, repo.created)
	assert.Equal(t, ap, repo.created)
}

func TestCreateAppointment_DataInvalida(t *testing.T) {
	repo, in := createFixture()
	in.Date = "15/01/2030"

	uc := NewCreateAppointment(repo, audit.NewNop())
	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateAppointment_MuitoEmCimaDaHora(t *testing.T) {
	repo, in := createFixture()
	in.Date = "2020-01-15" // passado

	uc := NewCreateAppointment(repo, audit.NewNop())
	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateAppointment_ConflitoDeHorarioNaoGrava(t *testing.T) {
	repo, in := createFixture()
	repo.conflict = true

	uc := NewCreateAppointment(repo, audit.NewNop())
	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Nil(t, repo.created)
}

func TestCreateAppointment_ProdutoNaoAgenda(t *testing.T) {
	repo, in := createFixture()
	repo.service.Type = models.ServiceTypeProduto

	uc := NewCreateAppointment(repo, audit.NewNop())
	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_bookable"))
}

func TestCreateAppointment_ServicoInativoNaoAgenda(t *testing.T) {
	repo, in := createFixture()
	repo.service.Active = false

	uc := NewCreateAppointment(repo, audit.NewNop())
	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_bookable"))
}
