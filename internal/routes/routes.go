package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barbeariahub/api/internal/audit"
	"github.com/barbeariahub/api/internal/authz"
	"github.com/barbeariahub/api/internal/cache"
	"github.com/barbeariahub/api/internal/config"
	"github.com/barbeariahub/api/internal/handlers"
	infraRepo "github.com/barbeariahub/api/internal/infra/repository"
	"github.com/barbeariahub/api/internal/mail"
	"github.com/barbeariahub/api/internal/middleware"
	"github.com/barbeariahub/api/internal/payment"
	"github.com/barbeariahub/api/internal/storage"
	ucAppointment "github.com/barbeariahub/api/internal/usecase/appointment"
	ucCheckout "github.com/barbeariahub/api/internal/usecase/checkout"
	ucSale "github.com/barbeariahub/api/internal/usecase/sale"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	checkoutStore := infraRepo.NewCheckoutGormStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	cc := cache.New(cfg, log)
	media := storage.NewMediaStore(cfg)
	mailer := mail.NewLogSender(log)

	stripeProvider := payment.NewStripeProvider(cfg)

	var pixCharger *payment.PixCharger
	if cfg.MercadoPagoToken != "" {
		charger, err := payment.NewPixCharger(cfg.MercadoPagoToken)
		if err != nil {
			log.Warn("pix charger disabled", zap.Error(err))
		} else {
			pixCharger = charger
		}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(appointmentRepo, auditDispatcher)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createSaleUC := ucSale.NewCreateSale(db, auditDispatcher)

	createSessionUC := ucCheckout.NewCreateSession(checkoutStore, stripeProvider, auditDispatcher)
	confirmPaymentUC := ucCheckout.NewConfirmPayment(checkoutStore, stripeProvider, auditDispatcher)

	var createPixUC *ucCheckout.CreatePixCharge
	if pixCharger != nil {
		createPixUC = ucCheckout.NewCreatePixCharge(checkoutStore, pixCharger, auditDispatcher)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	meHandler := handlers.NewMeHandler(db, media)
	barbeariaHandler := handlers.NewBarbeariaHandler(db, media, auditDispatcher)
	teamHandler := handlers.NewTeamHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db, media, cc, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, cc, auditDispatcher)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(
		db, cc,
		createAppointmentUC,
		transitionAppointmentUC,
		availabilityUC,
	)
	saleHandler := handlers.NewSaleHandler(db, cc, createSaleUC)
	cashFlowHandler := handlers.NewCashFlowHandler(db, cc, auditDispatcher)
	reportHandler := handlers.NewReportHandler(db, cc)
	checkoutHandler := handlers.NewCheckoutHandler(cc, createSessionUC, confirmPaymentUC, createPixUC)
	publicHandler := handlers.NewPublicHandler(db, cc, createAppointmentUC, availabilityUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")

	// ------------------------------
	// PÚBLICO (sem token)
	// ------------------------------
	public := api.Group("/public")
	{
		public.GET("/barbearias", publicHandler.Directory)
		public.GET("/barbearias/:slug", publicHandler.Page)
		public.GET("/barbearias/:slug/availability", publicHandler.Availability)
		public.POST("/barbearias/:slug/appointments", publicHandler.Book)

		// Retorno do checkout hospedado
		public.GET("/checkout/confirm", checkoutHandler.Confirm)
		public.POST("/checkout/confirm", checkoutHandler.Confirm)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/confirm-email", authHandler.ConfirmEmail)
		auth.POST("/resend-confirmation", authHandler.ResendConfirmation)
	}

	// ------------------------------
	// AUTENTICADO
	// ------------------------------
	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/me", meHandler.Get)
		secured.PUT("/me", meHandler.Update)
		secured.POST("/me/avatar", meHandler.UploadAvatar)

		secured.GET("/working-hours", workingHoursHandler.List)
		secured.PUT("/working-hours", workingHoursHandler.Replace)

		barbearia := secured.Group("/barbearia",
			middleware.RequireCapability(authz.ActionManageBarbearia))
		{
			barbearia.GET("", barbeariaHandler.Get)
			barbearia.PUT("", barbeariaHandler.Update)
			barbearia.POST("/logo", barbeariaHandler.UploadLogo)
		}

		team := secured.Group("/team",
			middleware.RequireCapability(authz.ActionManageTeam))
		{
			team.GET("", teamHandler.List)
			team.POST("", teamHandler.Create)
			team.PUT("/:id", teamHandler.Update)
		}

		secured.GET("/services",
			middleware.RequireCapability(authz.ActionViewServices),
			serviceHandler.List)

		services := secured.Group("/services",
			middleware.RequireCapability(authz.ActionManageServices))
		{
			services.POST("", serviceHandler.Create)
			services.PUT("/:id", serviceHandler.Update)
			services.DELETE("/:id", serviceHandler.Deactivate)
		}

		clients := secured.Group("/clients",
			middleware.RequireCapability(authz.ActionManageClients))
		{
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.Get)
			clients.POST("", clientHandler.Create)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
			clients.POST("/:id/avatar", clientHandler.UploadAvatar)
		}

		appointments := secured.Group("/appointments",
			middleware.RequireCapability(authz.ActionManageAppointments))
		{
			appointments.GET("", appointmentHandler.List)
			appointments.POST("", appointmentHandler.Create)
			appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
			appointments.GET("/availability", appointmentHandler.Availability)
		}

		sales := secured.Group("/sales",
			middleware.RequireCapability(authz.ActionRegisterSales))
		{
			sales.GET("", saleHandler.List)
			sales.POST("", saleHandler.Create)
		}

		checkout := secured.Group("/checkout",
			middleware.RequireCapability(authz.ActionRegisterSales))
		{
			checkout.POST("/session", checkoutHandler.CreateSession)
			checkout.POST("/pix", checkoutHandler.CreatePixCharge)
		}

		cashflow := secured.Group("/cashflow",
			middleware.RequireCapability(authz.ActionManageCashFlow))
		{
			cashflow.GET("", cashFlowHandler.List)
			cashflow.POST("", cashFlowHandler.Create)
			cashflow.PUT("/:id", cashFlowHandler.Update)
			cashflow.DELETE("/:id", cashFlowHandler.Delete)
			cashflow.GET("/summary", cashFlowHandler.Summary)
		}

		reports := secured.Group("/reports",
			middleware.RequireCapability(authz.ActionViewReports))
		{
			reports.GET("/dashboard", reportHandler.Dashboard)
			reports.GET("/revenue/by-day", reportHandler.RevenueByDay)
			reports.GET("/revenue/by-payment-method", reportHandler.RevenueByPaymentMethod)
			reports.GET("/revenue/by-professional", reportHandler.RevenueByProfessional)
			reports.GET("/top-services", reportHandler.TopServices)
			reports.GET("/stock", reportHandler.Stock)
			reports.GET("/appointments/by-status", reportHandler.AppointmentsByStatus)
			reports.GET("/appointments/by-professional", reportHandler.AppointmentsByProfessional)
			reports.GET("/appointments/by-service", reportHandler.AppointmentsByService)
			reports.GET("/cashflow/by-day", reportHandler.CashFlowByDay)
			reports.GET("/cashflow/by-category", reportHandler.CashFlowByCategory)
			reports.GET("/clients/new-by-day", reportHandler.NewClientsByDay)
			reports.GET("/clients/top", reportHandler.TopClients)
		}

		secured.GET("/audit-logs",
			middleware.RequireCapability(authz.ActionManageBarbearia),
			auditLogsHandler.List)
	}
}
