package sale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/models"
)

func svc(id uint, name, price string) *models.Service {
	return &models.Service{
		ID:     id,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Active: true,
	}
}

func TestBuildItems_CongelaNomeEPreco(t *testing.T) {
	services := map[uint]*models.Service{
		1: svc(1, "Corte", "50.00"),
		2: svc(2, "Pomada", "35.90"),
	}

	items, err := BuildItems([]ItemInput{
		{ServiceID: 1, Quantity: 1},
		{ServiceID: 2, Quantity: 3},
	}, services)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Corte", items[0].ServiceName)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, items[0].TotalPrice.Equal(decimal.RequireFromString("50.00")))

	assert.Equal(t, "Pomada", items[1].ServiceName)
	assert.Equal(t, 3, items[1].Quantity)
	assert.True(t, items[1].TotalPrice.Equal(decimal.RequireFromString("107.70")))
}

func TestBuildItems_VendaVazia(t *testing.T) {
	_, err := BuildItems(nil, nil)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "empty_sale"))
}

func TestBuildItems_ServicoInexistenteOuInativo(t *testing.T) {
	_, err := BuildItems([]ItemInput{{ServiceID: 9, Quantity: 1}},
		map[uint]*models.Service{})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	inativo := svc(1, "Corte", "50.00")
	inativo.Active = false

	_, err = BuildItems([]ItemInput{{ServiceID: 1, Quantity: 1}},
		map[uint]*models.Service{1: inativo})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestBuildItems_QuantidadeInvalida(t *testing.T) {
	services := map[uint]*models.Service{1: svc(1, "Corte", "50.00")}

	_, err := BuildItems([]ItemInput{{ServiceID: 1, Quantity: 0}}, services)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestTotalAmount_SomaDosItens(t *testing.T) {
	services := map[uint]*models.Service{
		1: svc(1, "Corte", "50.00"),
		2: svc(2, "Barba", "30.00"),
	}

	items, err := BuildItems([]ItemInput{
		{ServiceID: 1, Quantity: 2},
		{ServiceID: 2, Quantity: 1},
	}, services)
	require.NoError(t, err)

	// total == soma de quantidade x preço unitário
	assert.True(t, TotalAmount(items).Equal(decimal.RequireFromString("130.00")))
	assert.True(t, TotalAmount(nil).IsZero())
}
