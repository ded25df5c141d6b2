package export

import (
	"encoding/csv"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/barbeariahub/api/internal/domain/report"
)

// CSV escreve a tabela como download text/csv.
func CSV(c *gin.Context, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(200)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

// BucketRows converte buckets de relatório em linhas de CSV.
func BucketRows(buckets []report.Bucket) [][]string {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			b.Label,
			b.Value.StringFixed(2),
			fmt.Sprintf("%d", b.Count),
		})
	}
	return rows
}
