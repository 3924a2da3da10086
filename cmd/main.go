package main

import (
	"context"
	"fmt"
	"log"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"rentdesk/internal/caching"
	"rentdesk/internal/config"
	"rentdesk/internal/handlers"
	"rentdesk/internal/middleware"
	"rentdesk/internal/models"
	"rentdesk/internal/repositories"
	"rentdesk/internal/services"
	"rentdesk/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Database connection pool
	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object storage for tenant photos
	photoSvc, err := services.NewPhotoService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	if err := photoSvc.EnsureBucketExists(context.Background(), cfg.PhotoBucket); err != nil {
		log.Printf("WARNING: could not ensure photo bucket exists: %v", err)
	}

	// Cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	buildingRepo := repositories.NewBuildingRepo(pool)
	unitRepo := repositories.NewUnitRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	paymentRepo := repositories.NewRentPaymentRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userSvc := services.NewUserService(userRepo)
	buildingSvc := services.NewBuildingService(buildingRepo)
	unitSvc := services.NewUnitService(unitRepo, buildingRepo, cacheSvc)
	tenantSvc := services.NewTenantService(pool, tenantRepo, unitRepo, cacheSvc)
	paymentSvc := services.NewRentPaymentService(pool, paymentRepo, tenantRepo)
	dashboardSvc := services.NewDashboardService(buildingRepo, unitRepo, tenantRepo, paymentRepo, userRepo, cacheSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	buildingHandlers := handlers.NewBuildingHandlers(buildingSvc)
	unitHandlers := handlers.NewUnitHandlers(unitSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc, photoSvc, cfg.PhotoBucket)
	paymentHandlers := handlers.NewRentPaymentHandlers(paymentSvc, tenantSvc)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)

	// Echo instance and global middleware
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	v1 := e.Group("/v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(cfg.JWTSecret)))

	protected.GET("/me", authHandlers.Me)

	// Role-partitioned dashboards
	protected.GET("/dashboard/admin", dashboardHandlers.AdminDashboard, middleware.RequireRole(models.RoleAdmin))
	protected.GET("/dashboard/tenant", dashboardHandlers.TenantDashboard, middleware.RequireRole(models.RoleTenant))

	// Admin-gated entity routes. Services re-check the acting principal
	// on every call.
	admin := protected.Group("", middleware.RequireRole(models.RoleAdmin))

	admin.GET("/users", userHandlers.ListUsers)
	admin.POST("/users", userHandlers.CreateUser)
	admin.GET("/users/:id", userHandlers.GetUser)
	admin.PUT("/users/:id", userHandlers.UpdateUser)
	admin.DELETE("/users/:id", userHandlers.DeleteUser)

	admin.GET("/buildings", buildingHandlers.ListBuildings)
	admin.POST("/buildings", buildingHandlers.CreateBuilding)
	admin.GET("/buildings/:id", buildingHandlers.GetBuilding)
	admin.PUT("/buildings/:id", buildingHandlers.UpdateBuilding)
	admin.DELETE("/buildings/:id", buildingHandlers.DeleteBuilding)

	admin.GET("/units", unitHandlers.ListUnits)
	admin.POST("/units", unitHandlers.CreateUnit)
	admin.GET("/units/:id", unitHandlers.GetUnit)
	admin.PUT("/units/:id", unitHandlers.UpdateUnit)
	admin.DELETE("/units/:id", unitHandlers.DeleteUnit)

	admin.GET("/tenants", tenantHandlers.ListTenants)
	admin.POST("/tenants", tenantHandlers.CreateTenant)
	admin.GET("/tenants/:id", tenantHandlers.GetTenant)
	admin.PUT("/tenants/:id", tenantHandlers.UpdateTenant)
	admin.DELETE("/tenants/:id", tenantHandlers.DeleteTenant)
	admin.POST("/tenants/:id/photo", tenantHandlers.UploadPhoto)
	admin.GET("/tenants/:id/photo", tenantHandlers.GetPhotoURL)

	admin.GET("/payments", paymentHandlers.ListPayments)
	admin.POST("/payments", paymentHandlers.CreatePayment)
	admin.GET("/payments/:id", paymentHandlers.GetPayment)
	admin.PUT("/payments/:id", paymentHandlers.UpdatePayment)
	admin.DELETE("/payments/:id", paymentHandlers.DeletePayment)
	admin.GET("/payments/:id/receipt", paymentHandlers.DownloadReceipt)

	log.Printf("rentdesk server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
