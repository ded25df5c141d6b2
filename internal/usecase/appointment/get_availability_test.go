package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
)

// fakeRepo implementa domain.Repository em memória para os testes de
// disponibilidade e criação.
type fakeRepo struct {
	shop         *models.Barbearia
	service      *models.Service
	workingHours *models.WorkingHours
	appointments []models.Appointment
	appointment  *models.Appointment

	// conflict simula a janela já ocupada detectada dentro da transação
	// de CreateAppointment.
	conflict bool

	created *models.Appointment
	updated *models.Appointment
}

func (f *fakeRepo) GetBarbeariaByID(ctx context.Context, id uint) (*models.Barbearia, error) {
	return f.shop, nil
}

func (f *fakeRepo) GetService(ctx context.Context, barbeariaID, serviceID uint) (*models.Service, error) {
	return f.service, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, barbeariaID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 1, Name: name, Phone: phone, Email: email}, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.conflict {
		return httperr.ErrBusiness("time_conflict")
	}
	ap.ID = 1
	f.created = ap
	return nil
}

func (f *fakeRepo) GetAppointmentForBarbearia(ctx context.Context, appointmentID, barbeariaID uint) (*models.Appointment, error) {
	if f.appointment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.appointment, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.updated = ap
	return nil
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, professionalID uint, weekday int) (*models.WorkingHours, error) {
	return f.workingHours, nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeRepo) IsWithinWorkingHours(ctx context.Context, professionalID uint, start, end time.Time) (bool, error) {
	return true, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.appointments, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// AVAILABILITY
// ======================================================

func availabilityFixture() (*fakeRepo, domain.AvailabilityInput) {
	repo := &fakeRepo{
		shop:    &models.Barbearia{ID: 1, Timezone: "America/Sao_Paulo"},
		service: &models.Service{ID: 4, DurationMin: 60, Active: true, Type: models.ServiceTypeServico},
		workingHours: &models.WorkingHours{
			Weekday:   1, // segunda
			StartTime: "09:00",
			EndTime:   "12:00",
			Active:    true,
		},
	}

	// 2024-06-10 é segunda-feira
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	return repo, domain.AvailabilityInput{
		BarbeariaID:    1,
		ProfessionalID: 3,
		ServiceID:      4,
		Date:           date,
	}
}

func TestGetAvailability_DiaLivre(t *testing.T) {
	repo, in := availabilityFixture()
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[0].End)
	assert.Equal(t, "11:00", slots[2].Start)
	assert.Equal(t, "12:00", slots[2].End)
}

func TestGetAvailability_RemoveHorarioOcupado(t *testing.T) {
	repo, in := availabilityFixture()

	day := in.Date
	repo.appointments = []models.Appointment{{
		StartTime: time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, day.Location()),
		EndTime:   time.Date(day.Year(), day.Month(), day.Day(), 11, 0, 0, 0, day.Location()),
	}}

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "11:00", slots[1].Start)
}

func TestGetAvailability_PulaAlmoco(t *testing.T) {
	repo, in := availabilityFixture()
	repo.workingHours.EndTime = "14:00"
	repo.workingHours.LunchStart = "12:00"
	repo.workingHours.LunchEnd = "13:00"

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	for _, s := range slots {
		assert.NotEqual(t, "12:00", s.Start)
	}
	// 09, 10, 11 e 13
	require.Len(t, slots, 4)
	assert.Equal(t, "13:00", slots[3].Start)
}

func TestGetAvailability_DiaSemExpediente(t *testing.T) {
	repo, in := availabilityFixture()
	repo.workingHours.Active = false

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_SlotNaoEstouraFimDoExpediente(t *testing.T) {
	repo, in := availabilityFixture()
	repo.service.DurationMin = 90

	uc := NewGetAvailability(repo)
	slots, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// 09:00-10:30 e 10:30-12:00; um terceiro passaria das 12:00
	require.Len(t, slots, 2)
	assert.Equal(t, "10:30", slots[1].Start)
	assert.Equal(t, "12:00", slots[1].End)
}
