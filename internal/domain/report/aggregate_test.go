package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	label string
	value string
}

func toRows(pairs ...[2]string) []row {
	out := make([]row, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, row{label: p[0], value: p[1]})
	}
	return out
}

func aggregate(rows []row) []Bucket {
	return Aggregate(rows,
		func(r row) string { return r.label },
		func(r row) decimal.Decimal { return decimal.RequireFromString(r.value) },
	)
}

func TestAggregate_Vazio(t *testing.T) {
	buckets := aggregate(nil)
	require.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestAggregate_SomaPorRotulo(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"2024-01-01", "50.00"},
		[2]string{"2024-01-01", "30.00"},
		[2]string{"2024-01-02", "20.00"},
	))

	require.Len(t, buckets, 2)

	assert.Equal(t, "2024-01-01", buckets[0].Label)
	assert.True(t, buckets[0].Value.Equal(decimal.RequireFromString("80.00")))
	assert.Equal(t, 2, buckets[0].Count)

	assert.Equal(t, "2024-01-02", buckets[1].Label)
	assert.True(t, buckets[1].Value.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, 1, buckets[1].Count)
}

func TestAggregate_OrdemDePrimeiraOcorrencia(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"pix", "10"},
		[2]string{"dinheiro", "5"},
		[2]string{"pix", "10"},
	))

	require.Len(t, buckets, 2)
	assert.Equal(t, "pix", buckets[0].Label)
	assert.Equal(t, "dinheiro", buckets[1].Label)
}

func TestAggregate_MeasureNilContaLinhas(t *testing.T) {
	buckets := Aggregate([]row{{label: "a"}, {label: "a"}, {label: "b"}},
		func(r row) string { return r.label },
		nil,
	)

	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].Value.IsZero())
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
}

func TestByLabel_DatasISOFicamCronologicas(t *testing.T) {
	buckets := ByLabel(aggregate(toRows(
		[2]string{"2024-01-10", "1"},
		[2]string{"2024-01-02", "1"},
		[2]string{"2024-01-05", "1"},
	)))

	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-01-02", buckets[0].Label)
	assert.Equal(t, "2024-01-05", buckets[1].Label)
	assert.Equal(t, "2024-01-10", buckets[2].Label)
}

func TestTopN(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"corte", "100"},
		[2]string{"barba", "300"},
		[2]string{"pomada", "200"},
	))

	top := TopN(buckets, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "barba", top[0].Label)
	assert.Equal(t, "pomada", top[1].Label)
}

func TestTopN_EmpateMantemOrdemDeInsercao(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"a", "50"},
		[2]string{"b", "50"},
		[2]string{"c", "50"},
	))

	top := TopN(buckets, 3)
	assert.Equal(t, "a", top[0].Label)
	assert.Equal(t, "b", top[1].Label)
	assert.Equal(t, "c", top[2].Label)
}

func TestTopN_NegativoNaoTrunca(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"a", "1"},
		[2]string{"b", "2"},
	))

	assert.Len(t, TopN(buckets, -1), 2)
}

func TestTopNByCount(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"a", "1"},
		[2]string{"b", "1"},
		[2]string{"b", "1"},
	))

	top := TopNByCount(buckets, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "b", top[0].Label)
	assert.Equal(t, 2, top[0].Count)
}

func TestSum(t *testing.T) {
	buckets := aggregate(toRows(
		[2]string{"a", "10.50"},
		[2]string{"b", "4.50"},
	))

	assert.True(t, Sum(buckets).Equal(decimal.RequireFromString("15.00")))
	assert.True(t, Sum(nil).IsZero())
}
