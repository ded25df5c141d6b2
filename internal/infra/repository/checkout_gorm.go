package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/usecase/checkout"
)

type CheckoutGormStore struct {
	db *gorm.DB
}

func NewCheckoutGormStore(db *gorm.DB) *CheckoutGormStore {
	return &CheckoutGormStore{db: db}
}

func (s *CheckoutGormStore) GetBarbearia(ctx context.Context, id uint) (*models.Barbearia, error) {
	var shop models.Barbearia
	if err := s.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (s *CheckoutGormStore) GetService(ctx context.Context, barbeariaID, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).
		Where("id = ? AND barbearia_id = ?", serviceID, barbeariaID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *CheckoutGormStore) GetProfessional(ctx context.Context, barbeariaID, professionalID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("id = ? AND barbearia_id = ?", professionalID, barbeariaID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *CheckoutGormStore) GetClient(ctx context.Context, barbeariaID, clientID uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).
		Where("id = ? AND barbearia_id = ?", clientID, barbeariaID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *CheckoutGormStore) FindPaymentBySession(ctx context.Context, sessionID string) (*models.Payment, error) {
	var pay models.Payment
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&pay).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pay, nil
}

func (s *CheckoutGormStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *CheckoutGormStore) CreatePayment(ctx context.Context, pay *models.Payment) error {
	return s.db.WithContext(ctx).Create(pay).Error
}

// CreateAppointmentAndPayment grava o agendamento confirmado e o registro
// de pagamento na mesma transação.
func (s *CheckoutGormStore) CreateAppointmentAndPayment(
	ctx context.Context,
	ap *models.Appointment,
	pay *models.Payment,
) error {

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		pay.AppointmentID = &ap.ID
		return tx.Create(pay).Error
	})
}

var _ checkout.PixStore = (*CheckoutGormStore)(nil)
