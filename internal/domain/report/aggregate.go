package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Bucket é um grupo rotulado com soma monetária e contagem de linhas.
type Bucket struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

// Aggregate agrupa linhas pelo rótulo derivado e acumula soma e contagem.
// A ordem dos buckets segue a primeira ocorrência de cada rótulo; conjuntos
// vazios produzem uma fatia vazia, nunca erro.
func Aggregate[T any](
	rows []T,
	groupBy func(T) string,
	measure func(T) decimal.Decimal,
) []Bucket {

	index := make(map[string]int, len(rows))
	buckets := make([]Bucket, 0, len(rows))

	for _, row := range rows {
		label := groupBy(row)

		value := decimal.Zero
		if measure != nil {
			value = measure(row)
		}

		i, ok := index[label]
		if !ok {
			index[label] = len(buckets)
			buckets = append(buckets, Bucket{
				Label: label,
				Value: value,
				Count: 1,
			})
			continue
		}

		buckets[i].Value = buckets[i].Value.Add(value)
		buckets[i].Count++
	}

	return buckets
}

// ByLabel ordena crescente pelo rótulo. Datas em formato ISO (2006-01-02)
// ficam em ordem cronológica.
func ByLabel(buckets []Bucket) []Bucket {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

// TopN ordena por valor decrescente (empates mantêm a ordem de inserção)
// e trunca em n.
func TopN(buckets []Bucket, n int) []Bucket {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Value.GreaterThan(buckets[j].Value)
	})

	if n >= 0 && len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

// TopNByCount é o TopN para rankings por contagem (ex.: atendimentos).
func TopNByCount(buckets []Bucket, n int) []Bucket {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if n >= 0 && len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

// Sum acumula o total de todos os buckets.
func Sum(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Value)
	}
	return total
}
