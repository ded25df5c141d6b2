package appointment

import (
	"context"
	"time"

	"github.com/barbeariahub/api/internal/models"
)

type Repository interface {
	// -------- Barbearia --------
	GetBarbeariaByID(
		ctx context.Context,
		id uint,
	) (*models.Barbearia, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbeariaID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbeariaID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create) --------
	// CreateAppointment falha com time_conflict quando a janela já está
	// ocupada; a checagem e o insert acontecem na mesma transação.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarbearia(
		ctx context.Context,
		appointmentID uint,
		barbeariaID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	IsWithinWorkingHours(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
