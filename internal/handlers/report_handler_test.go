package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportCacheKey_SeparaFiltroDeProfissional(t *testing.T) {
	base := reportPeriod{
		barbeariaID: 7,
		tz:          "America/Sao_Paulo",
		start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		end:         time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	all := base
	one := base
	one.professionalID = 3
	other := base
	other.professionalID = 4

	assert.NotEqual(t, all.cacheKey("revenue_by_day"), one.cacheKey("revenue_by_day"))
	assert.NotEqual(t, one.cacheKey("revenue_by_day"), other.cacheKey("revenue_by_day"))

	// Mesma consulta gera a mesma chave
	again := base
	again.professionalID = 3
	assert.Equal(t, one.cacheKey("revenue_by_day"), again.cacheKey("revenue_by_day"))
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		name  string
		stock int
		want  string
	}{
		{"zerado", 0, "sem_estoque"},
		{"negativo", -1, "sem_estoque"},
		{"no limite", 5, "estoque_baixo"},
		{"um", 1, "estoque_baixo"},
		{"folgado", 6, "ok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stockStatus(tc.stock))
		})
	}
}

func TestReportCacheKey_SeparaRelatorioEPeriodo(t *testing.T) {
	p := reportPeriod{
		barbeariaID: 7,
		start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		end:         time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.NotEqual(t, p.cacheKey("revenue_by_day"), p.cacheKey("top_clients"))

	shifted := p
	shifted.end = shifted.end.AddDate(0, 1, 0)
	assert.NotEqual(t, p.cacheKey("revenue_by_day"), shifted.cacheKey("revenue_by_day"))
}
