package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/cache"
	domain "github.com/barbeariahub/api/internal/domain/appointment"
	"github.com/barbeariahub/api/internal/domain/report"
	"github.com/barbeariahub/api/internal/export"
	"github.com/barbeariahub/api/internal/httperr"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/models"
	"github.com/barbeariahub/api/internal/timezone"
)

const reportCacheTTL = 5 * time.Minute

const topRankingSize = 10

// ReportHandler agrega vendas, agendamentos, clientes e caixa do período.
// Resultados ficam no cache sob a tag da entidade de origem; mutações
// invalidam a tag. Todas as rotas aceitam ?format=csv.
type ReportHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReportHandler(db *gorm.DB, cc *cache.Cache) *ReportHandler {
	return &ReportHandler{db: db, cache: cc}
}

// ======================================================
// HELPERS
// ======================================================

type reportPeriod struct {
	barbeariaID uint
	tz          string
	start       time.Time
	end         time.Time

	// professionalID filtra vendas e agendamentos; zero significa todos.
	professionalID uint
}

func (h *ReportHandler) period(c *gin.Context) (*reportPeriod, bool) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	var shop models.Barbearia
	if err := h.db.First(&shop, barbeariaID).Error; err != nil {
		httperr.Internal(c, "barbearia_not_found", "Barbearia não encontrada.")
		return nil, false
	}

	start, end, ok := parsePeriod(c, shop.Timezone)
	if !ok {
		return nil, false
	}

	var professionalID uint
	if c.Query("professional_id") != "" {
		id, err := parseQueryUint(c, "professional_id")
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "Parâmetros inválidos.")
			return nil, false
		}
		professionalID = id
	}

	return &reportPeriod{
		barbeariaID:    barbeariaID,
		tz:             shop.Timezone,
		start:          start,
		end:            end,
		professionalID: professionalID,
	}, true
}

// cacheKey identifica a consulta inteira, filtro de profissional incluso,
// para um filtro não servir o resultado do outro.
func (p *reportPeriod) cacheKey(name string) string {
	return fmt.Sprintf("report:%d:%s:%s:%s:%d",
		p.barbeariaID,
		name,
		p.start.Format("2006-01-02"),
		p.end.Format("2006-01-02"),
		p.professionalID,
	)
}

func dayLabel(t time.Time, tz string) string {
	return t.In(timezone.Location(tz)).Format("2006-01-02")
}

// respond entrega JSON ou CSV conforme ?format=.
func respond(c *gin.Context, name string, buckets []report.Bucket) {
	if c.Query("format") == "csv" {
		export.CSV(c, name+".csv",
			[]string{"label", "value", "count"},
			export.BucketRows(buckets),
		)
		return
	}

	c.JSON(200, gin.H{
		"data":  buckets,
		"total": report.Sum(buckets),
	})
}

func (h *ReportHandler) loadSales(p *reportPeriod) ([]models.Sale, error) {
	q := h.db.
		Preload("Items").
		Preload("Professional").
		Where("barbearia_id = ?", p.barbeariaID).
		Where("payment_date >= ? AND payment_date < ?", p.start, p.end)

	if p.professionalID != 0 {
		q = q.Where("professional_id = ?", p.professionalID)
	}

	var sales []models.Sale
	err := q.Find(&sales).Error
	return sales, err
}

func (h *ReportHandler) loadAppointments(p *reportPeriod) ([]models.Appointment, error) {
	q := h.db.
		Preload("Professional").
		Preload("Service").
		Where("barbearia_id = ?", p.barbeariaID).
		Where("start_time >= ? AND start_time < ?", p.start, p.end)

	if p.professionalID != 0 {
		q = q.Where("professional_id = ?", p.professionalID)
	}

	var aps []models.Appointment
	err := q.Find(&aps).Error
	return aps, err
}

// cached roda compute apenas quando a chave não está no cache.
func (h *ReportHandler) cached(
	c *gin.Context,
	p *reportPeriod,
	name string,
	tag string,
	compute func() ([]report.Bucket, error),
) {
	key := p.cacheKey(name)
	ctx := c.Request.Context()

	var buckets []report.Bucket
	if h.cache.Get(ctx, key, &buckets) {
		respond(c, name, buckets)
		return
	}

	buckets, err := compute()
	if err != nil {
		httperr.Internal(c, "report_failed", "Erro ao gerar relatório.")
		return
	}

	h.cache.Set(ctx, key, buckets, tag, reportCacheTTL)
	respond(c, name, buckets)
}

// ======================================================
// FINANCEIRO (vendas)
// ======================================================

func (h *ReportHandler) RevenueByDay(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "revenue_by_day", "sales", func() ([]report.Bucket, error) {
		sales, err := h.loadSales(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(sales,
			func(s models.Sale) string { return dayLabel(s.PaymentDate, p.tz) },
			func(s models.Sale) decimal.Decimal { return s.TotalAmount },
		)
		return report.ByLabel(buckets), nil
	})
}

func (h *ReportHandler) RevenueByPaymentMethod(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "revenue_by_payment_method", "sales", func() ([]report.Bucket, error) {
		sales, err := h.loadSales(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(sales,
			func(s models.Sale) string { return s.PaymentMethod },
			func(s models.Sale) decimal.Decimal { return s.TotalAmount },
		)
		return report.TopN(buckets, -1), nil
	})
}

func (h *ReportHandler) RevenueByProfessional(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "revenue_by_professional", "sales", func() ([]report.Bucket, error) {
		sales, err := h.loadSales(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(sales,
			func(s models.Sale) string { return s.Professional.Name },
			func(s models.Sale) decimal.Decimal { return s.TotalAmount },
		)
		return report.TopN(buckets, -1), nil
	})
}

// TopServices ranqueia os itens mais vendidos por receita, serviços e
// produtos juntos. ?type=servico|produto filtra.
func (h *ReportHandler) TopServices(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	typeFilter := c.Query("type")
	name := "top_services"
	if typeFilter != "" {
		name += ":" + typeFilter
	}

	h.cached(c, p, name, "sales", func() ([]report.Bucket, error) {
		sales, err := h.loadSales(p)
		if err != nil {
			return nil, err
		}

		serviceTypes := map[uint]string{}
		if typeFilter != "" {
			var services []models.Service
			if err := h.db.
				Where("barbearia_id = ?", p.barbeariaID).
				Find(&services).Error; err != nil {
				return nil, err
			}
			for _, s := range services {
				serviceTypes[s.ID] = s.Type
			}
		}

		var items []models.SaleItem
		for _, s := range sales {
			for _, it := range s.Items {
				if typeFilter != "" && serviceTypes[it.ServiceID] != typeFilter {
					continue
				}
				items = append(items, it)
			}
		}

		buckets := report.Aggregate(items,
			func(it models.SaleItem) string { return it.ServiceName },
			func(it models.SaleItem) decimal.Decimal { return it.TotalPrice },
		)
		return report.TopN(buckets, topRankingSize), nil
	})
}

// ======================================================
// AGENDAMENTOS
// ======================================================

func (h *ReportHandler) AppointmentsByStatus(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "appointments_by_status", "appointments", func() ([]report.Bucket, error) {
		aps, err := h.loadAppointments(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(aps,
			func(a models.Appointment) string { return a.Status },
			nil,
		)
		return report.TopNByCount(buckets, -1), nil
	})
}

func (h *ReportHandler) AppointmentsByProfessional(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "appointments_by_professional", "appointments", func() ([]report.Bucket, error) {
		aps, err := h.loadAppointments(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(aps,
			func(a models.Appointment) string { return a.Professional.Name },
			nil,
		)
		return report.TopNByCount(buckets, -1), nil
	})
}

func (h *ReportHandler) AppointmentsByService(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "appointments_by_service", "appointments", func() ([]report.Bucket, error) {
		aps, err := h.loadAppointments(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(aps,
			func(a models.Appointment) string { return a.Service.Name },
			nil,
		)
		return report.TopNByCount(buckets, -1), nil
	})
}

// ======================================================
// CAIXA
// ======================================================

func (h *ReportHandler) loadCashTransactions(p *reportPeriod) ([]models.CashTransaction, error) {
	var txs []models.CashTransaction
	err := h.db.
		Where("barbearia_id = ?", p.barbeariaID).
		Where("created_at >= ? AND created_at < ?", p.start, p.end).
		Find(&txs).Error
	return txs, err
}

// signedAmount põe saídas como negativo para o saldo diário fechar.
func signedAmount(tx models.CashTransaction) decimal.Decimal {
	if tx.Type == models.CashTransactionSaida {
		return tx.Amount.Neg()
	}
	return tx.Amount
}

func (h *ReportHandler) CashFlowByDay(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "cashflow_by_day", "cashflow", func() ([]report.Bucket, error) {
		txs, err := h.loadCashTransactions(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(txs,
			func(tx models.CashTransaction) string { return dayLabel(tx.CreatedAt, p.tz) },
			signedAmount,
		)
		return report.ByLabel(buckets), nil
	})
}

func (h *ReportHandler) CashFlowByCategory(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "cashflow_by_category", "cashflow", func() ([]report.Bucket, error) {
		txs, err := h.loadCashTransactions(p)
		if err != nil {
			return nil, err
		}

		buckets := report.Aggregate(txs,
			func(tx models.CashTransaction) string {
				if tx.Category == "" {
					return "sem categoria"
				}
				return tx.Category
			},
			signedAmount,
		)
		return report.TopN(buckets, -1), nil
	})
}

// ======================================================
// CLIENTES
// ======================================================

func (h *ReportHandler) NewClientsByDay(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "new_clients_by_day", "clients", func() ([]report.Bucket, error) {
		var clients []models.Client
		if err := h.db.
			Where("barbearia_id = ?", p.barbeariaID).
			Where("created_at >= ? AND created_at < ?", p.start, p.end).
			Find(&clients).Error; err != nil {
			return nil, err
		}

		buckets := report.Aggregate(clients,
			func(cl models.Client) string { return dayLabel(cl.CreatedAt, p.tz) },
			nil,
		)
		return report.ByLabel(buckets), nil
	})
}

func (h *ReportHandler) TopClients(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	h.cached(c, p, "top_clients", "sales", func() ([]report.Bucket, error) {
		q := h.db.
			Preload("Client").
			Where("barbearia_id = ?", p.barbeariaID).
			Where("payment_date >= ? AND payment_date < ?", p.start, p.end).
			Where("client_id IS NOT NULL")

		if p.professionalID != 0 {
			q = q.Where("professional_id = ?", p.professionalID)
		}

		var sales []models.Sale
		if err := q.Find(&sales).Error; err != nil {
			return nil, err
		}

		buckets := report.Aggregate(sales,
			func(s models.Sale) string {
				if s.Client != nil {
					return s.Client.Name
				}
				return "sem cliente"
			},
			func(s models.Sale) decimal.Decimal { return s.TotalAmount },
		)
		return report.TopN(buckets, topRankingSize), nil
	})
}

// ======================================================
// ESTOQUE
// ======================================================

// Produtos com até esta quantidade entram como estoque baixo.
const lowStockThreshold = 5

type stockRow struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Status    string `json:"status"`
}

func stockStatus(stock int) string {
	switch {
	case stock <= 0:
		return "sem_estoque"
	case stock <= lowStockThreshold:
		return "estoque_baixo"
	default:
		return "ok"
	}
}

// Stock lista os produtos ativos com a situação do estoque, dos mais
// críticos para os mais folgados. Não depende de período.
func (h *ReportHandler) Stock(c *gin.Context) {
	barbeariaID := c.MustGet(middleware.ContextBarbeariaID).(uint)

	key := fmt.Sprintf("report:%d:stock", barbeariaID)
	ctx := c.Request.Context()

	var rows []stockRow
	if !h.cache.Get(ctx, key, &rows) {
		var products []models.Service
		if err := h.db.
			Where("barbearia_id = ? AND type = ? AND active = ?",
				barbeariaID, models.ServiceTypeProduto, true).
			Order("stock ASC").
			Find(&products).Error; err != nil {
			httperr.Internal(c, "report_failed", "Erro ao gerar relatório.")
			return
		}

		rows = make([]stockRow, 0, len(products))
		for _, s := range products {
			stock := 0
			if s.Stock != nil {
				stock = *s.Stock
			}
			rows = append(rows, stockRow{
				ServiceID: s.ID,
				Name:      s.Name,
				Stock:     stock,
				Status:    stockStatus(stock),
			})
		}

		h.cache.Set(ctx, key, rows, "services", reportCacheTTL)
	}

	if c.Query("format") == "csv" {
		records := make([][]string, 0, len(rows))
		for _, r := range rows {
			records = append(records, []string{r.Name, strconv.Itoa(r.Stock), r.Status})
		}
		export.CSV(c, "stock.csv", []string{"produto", "estoque", "status"}, records)
		return
	}

	c.JSON(200, gin.H{
		"data":  rows,
		"total": len(rows),
	})
}

// ======================================================
// DASHBOARD
// ======================================================

// Dashboard reúne os indicadores do período em uma resposta só.
// Não usa cache: é a soma de consultas já baratas.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	p, ok := h.period(c)
	if !ok {
		return
	}

	sales, err := h.loadSales(p)
	if err != nil {
		httperr.Internal(c, "report_failed", "Erro ao gerar relatório.")
		return
	}

	aps, err := h.loadAppointments(p)
	if err != nil {
		httperr.Internal(c, "report_failed", "Erro ao gerar relatório.")
		return
	}

	var newClients int64
	if err := h.db.Model(&models.Client{}).
		Where("barbearia_id = ?", p.barbeariaID).
		Where("created_at >= ? AND created_at < ?", p.start, p.end).
		Count(&newClients).Error; err != nil {
		httperr.Internal(c, "report_failed", "Erro ao gerar relatório.")
		return
	}

	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.TotalAmount)
	}

	completed := 0
	cancelled := 0
	for _, a := range aps {
		switch domain.Status(a.Status) {
		case domain.StatusConcluido:
			completed++
		case domain.StatusCancelado:
			cancelled++
		}
	}

	avgTicket := decimal.Zero
	if len(sales) > 0 {
		avgTicket = revenue.DivRound(decimal.NewFromInt(int64(len(sales))), 2)
	}

	c.JSON(200, gin.H{
		"revenue":                revenue,
		"sales_count":            len(sales),
		"average_ticket":         avgTicket,
		"appointments_total":     len(aps),
		"appointments_completed": completed,
		"appointments_cancelled": cancelled,
		"new_clients":            newClients,
		"period_from":            p.start.Format("2006-01-02"),
		"period_to":              p.end.AddDate(0, 0, -1).Format("2006-01-02"),
	})
}
