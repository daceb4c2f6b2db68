package router

import (
	"time"

	"belezapos/internal/config"
	"belezapos/internal/handler"
	"belezapos/internal/middleware"
	"belezapos/internal/repository"
	"belezapos/internal/service"
	"belezapos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	professionalRepo := repository.NewProfessionalRepository(db)
	clientRepo := repository.NewClientRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	rateRepo := repository.NewCommissionRateRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	cashierRepo := repository.NewCashierRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(professionalRepo, cfg)
	clientSvc := service.NewClientService(clientRepo)
	catalogSvc := service.NewCatalogService(catalogRepo, rateRepo, rdb)
	ticketSvc := service.NewTicketService(ticketRepo, catalogRepo, clientRepo)
	resolver := service.NewCommissionResolver(rateRepo, professionalRepo)
	settlementSvc := service.NewSettlementService(ticketRepo, settlementRepo, resolver, dispatcher)
	cashierSvc := service.NewCashierService(cashierRepo)
	reportSvc := service.NewReportService(settlementRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	professionalsH := handler.NewProfessionalHandler(authSvc)
	clientsH := handler.NewClientHandler(clientSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	ticketsH := handler.NewTicketHandler(ticketSvc, settlementSvc)
	cashierH := handler.NewCashierHandler(cashierSvc)
	reportsH := handler.NewReportHandler(reportSvc)
	pricesH := handler.NewPriceHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/prices/services/:id", pricesH.GetServicePrice)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: attendant, manager, admin — declared per-endpoint
		anyStaff := middleware.RequireRole("attendant", "manager", "admin")
		managers := middleware.RequireRole("manager", "admin")
		admins := middleware.RequireRole("admin")

		tickets := v1.Group("/tickets")
		{
			tickets.POST("", anyStaff, ticketsH.Open)
			tickets.GET("", anyStaff, ticketsH.List)
			tickets.GET("/:id", anyStaff, ticketsH.Get)
			tickets.POST("/:id/services", anyStaff, ticketsH.AddServiceLine)
			tickets.POST("/:id/products", anyStaff, ticketsH.AddProductLine)
			tickets.DELETE("/:id/lines/:lineId", anyStaff, ticketsH.RemoveLine)
			tickets.POST("/:id/finalize", anyStaff, ticketsH.Finalize)
			tickets.GET("/:id/settlement", anyStaff, ticketsH.Settlement)
		}

		cashier := v1.Group("/cashier")
		{
			cashier.POST("/open", anyStaff, cashierH.Open)
			cashier.POST("/movements", anyStaff, cashierH.Movement)
			cashier.POST("/close", anyStaff, cashierH.Close)
			cashier.GET("/active", anyStaff, cashierH.Active)
			cashier.GET("/:id/report", anyStaff, cashierH.Report)
			cashier.GET("/history", managers, cashierH.History)
		}

		clients := v1.Group("/clients")
		{
			clients.POST("", anyStaff, clientsH.Create)
			clients.GET("", anyStaff, clientsH.List)
			clients.GET("/:id", anyStaff, clientsH.Get)
			clients.PUT("/:id", anyStaff, clientsH.Update)
			clients.DELETE("/:id", managers, clientsH.Deactivate)
			clients.POST("/:id/credits", anyStaff, clientsH.AddCredit)
		}

		// Catalog — all staff can read, managers write
		v1.GET("/services", anyStaff, catalogH.ListServices)
		v1.GET("/products", anyStaff, catalogH.ListProducts)
		services := v1.Group("/services", managers)
		{
			services.POST("", catalogH.CreateService)
			services.PUT("/:id", catalogH.UpdateService)
			services.DELETE("/:id", catalogH.DeactivateService)
			services.POST("/:id/rates", catalogH.CreateRate)
			services.GET("/:id/rates", catalogH.ListRates)
			services.DELETE("/:id/rates/:rateId", catalogH.DeleteRate)
		}
		products := v1.Group("/products", managers)
		{
			products.POST("", catalogH.CreateProduct)
			products.PUT("/:id", catalogH.UpdateProduct)
			products.DELETE("/:id", catalogH.DeactivateProduct)
		}

		v1.GET("/reports/daily", managers, reportsH.Daily)

		professionals := v1.Group("/professionals", admins)
		{
			professionals.POST("", professionalsH.Create)
			professionals.GET("", professionalsH.List)
			professionals.PUT("/:id", professionalsH.Update)
			professionals.DELETE("/:id", professionalsH.Deactivate)
			professionals.PATCH("/:id/reactivate", professionalsH.Reactivate)
		}
	}

	return r
}
