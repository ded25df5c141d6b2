package appointment

import (
	"time"

	"github.com/barbeariahub/api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica uma mudança de status validada pela máquina de estados.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelado:
		ap.CancelledAt = &now
	case StatusConcluido:
		ap.CompletedAt = &now
	}

	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelado, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusConcluido, now)
}
