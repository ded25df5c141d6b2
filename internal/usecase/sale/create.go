package sale

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ItemInput struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateSaleInput struct {
	BarbeariaID uint
	UserID      uint

	ProfessionalID uint
	ClientID       *uint
	PaymentMethod  string
	Notes          string

	Items []ItemInput
}

var validMethods = map[string]bool{
	models.PaymentMethodDinheiro:      true,
	models.PaymentMethodCartaoDebito:  true,
	models.PaymentMethodCartaoCredito: true,
	models.PaymentMethodPix:           true,
	models.PaymentMethodTransferencia: true,
}

// ======================================================
// USE CASE
// ======================================================

// CreateSale grava a venda, os itens e a baixa de estoque de produtos em
// uma única transação; falha parcial desfaz tudo.
type CreateSale struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCreateSale(db *gorm.DB, audit *audit.Dispatcher) *CreateSale {
	return &CreateSale{db: db, audit: audit}
}

// BuildItems congela nome e preço unitário de cada serviço e calcula os
// totais por item. Puro: não toca o banco.
func BuildItems(items []ItemInput, services map[uint]*models.Service) ([]models.SaleItem, error) {
	if len(items) == 0 {
		return nil, httperr.ErrBusiness("empty_sale")
	}

	built := make([]models.SaleItem, 0, len(items))
	for _, in := range items {
		svc, ok := services[in.ServiceID]
		if !ok || !svc.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if in.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		built = append(built, models.SaleItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Quantity:    in.Quantity,
			UnitPrice:   svc.Price,
			TotalPrice:  svc.Price.Mul(qty),
		})
	}

	return built, nil
}

// TotalAmount soma os totais dos itens.
func TotalAmount(items []models.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

func (uc *CreateSale) Execute(
	ctx context.Context,
	in CreateSaleInput,
) (*models.Sale, error) {

	if !validMethods[in.PaymentMethod] {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	var created models.Sale
	var floored []uint

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var prof models.User
		if err := tx.
			Where("id = ? AND barbearia_id = ?", in.ProfessionalID, in.BarbeariaID).
			First(&prof).Error; err != nil {
			return httperr.ErrBusiness("professional_not_found")
		}

		if in.ClientID != nil {
			var client models.Client
			if err := tx.
				Where("id = ? AND barbearia_id = ?", *in.ClientID, in.BarbeariaID).
				First(&client).Error; err != nil {
				return httperr.ErrBusiness("client_not_found")
			}
		}

		services := make(map[uint]*models.Service, len(in.Items))
		for _, item := range in.Items {
			if _, ok := services[item.ServiceID]; ok {
				continue
			}

			var svc models.Service
			if err := tx.
				Where("id = ? AND barbearia_id = ?", item.ServiceID, in.BarbeariaID).
				First(&svc).Error; err != nil {
				return httperr.ErrBusiness("service_not_found")
			}
			services[item.ServiceID] = &svc
		}

		items, err := BuildItems(in.Items, services)
		if err != nil {
			return err
		}

		sale := models.Sale{
			BarbeariaID:    in.BarbeariaID,
			ProfessionalID: in.ProfessionalID,
			ClientID:       in.ClientID,
			PaymentMethod:  in.PaymentMethod,
			TotalAmount:    TotalAmount(items),
			PaymentDate:    timezone.Now(),
			Notes:          in.Notes,
		}

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		// Baixa de estoque somente para produtos. O estoque para em zero
		// mas não bloqueia a venda; comportamento pendente de decisão de
		// produto, por isso o registro em floored.
		for _, item := range items {
			svc := services[item.ServiceID]
			if svc.Type != models.ServiceTypeProduto || svc.Stock == nil {
				continue
			}

			newStock := *svc.Stock - item.Quantity
			if newStock < 0 {
				newStock = 0
				floored = append(floored, svc.ID)
			}

			if err := tx.Model(&models.Service{}).
				Where("id = ?", svc.ID).
				Update("stock", newStock).Error; err != nil {
				return err
			}
			svc.Stock = &newStock
		}

		sale.Items = items
		created = sale
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbeariaID: in.BarbeariaID,
		UserID:      &in.UserID,
		Action:      "sale_created",
		Entity:      "sale",
		EntityID:    &created.ID,
	})

	if len(floored) > 0 {
		uc.audit.Dispatch(audit.Event{
			BarbeariaID: in.BarbeariaID,
			UserID:      &in.UserID,
			Action:      "sale_stock_floored",
			Entity:      "sale",
			EntityID:    &created.ID,
			Metadata:    map[string]any{"service_ids": floored},
		})
	}

	return &created, nil
}
