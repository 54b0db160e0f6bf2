// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"uniformdesk/internal/domain/catalogs/school"
	"uniformdesk/internal/domain/catalogs/supplier"
	"uniformdesk/internal/domain/catalogs/uniform"
	"uniformdesk/internal/domain/reports"
	"uniformdesk/internal/domain/sales"
	"uniformdesk/internal/domain/stock"
	"uniformdesk/internal/infrastructure/http/v1/handlers"
	"uniformdesk/internal/infrastructure/http/v1/middleware"
	"uniformdesk/internal/infrastructure/storage/postgres"
	"uniformdesk/pkg/logger"
)

// RouterConfig holds the services the router exposes.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	Schools   *school.Service
	Suppliers *supplier.Service
	Uniforms  *uniform.Service
	Sales     *sales.Service
	Stock     *stock.Service
	Reports   *reports.Service

	// Development switches Gin out of release mode.
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler()

	schoolHandler := handlers.NewSchoolHandler(base, cfg.Schools)
	schools := router.Group("/schools")
	{
		schools.GET("", schoolHandler.List)
		schools.POST("", schoolHandler.Create)
		schools.PUT("/:id", schoolHandler.Update)
		schools.DELETE("/:id", schoolHandler.Delete)
	}

	supplierHandler := handlers.NewSupplierHandler(base, cfg.Suppliers)
	suppliers := router.Group("/suppliers")
	{
		suppliers.GET("", supplierHandler.List)
		suppliers.POST("", supplierHandler.Create)
		suppliers.PUT("/:id", supplierHandler.Update)
		suppliers.DELETE("/:id", supplierHandler.Delete)
	}

	uniformHandler := handlers.NewUniformHandler(base, cfg.Uniforms)
	uniforms := router.Group("/uniforms")
	{
		uniforms.GET("", uniformHandler.List)
		uniforms.POST("", uniformHandler.Create)
		uniforms.GET("/barcode/:barcode", uniformHandler.GetByBarcode)
		uniforms.PUT("/:id", uniformHandler.Update)
		uniforms.DELETE("/:id", uniformHandler.Delete)
	}

	salesHandler := handlers.NewSalesHandler(base, cfg.Sales)
	salesGroup := router.Group("/sales")
	{
		salesGroup.POST("", salesHandler.Checkout)
		salesGroup.GET("", salesHandler.Aggregate)
		salesGroup.GET("/report", salesHandler.Report)
		salesGroup.DELETE("/:id", salesHandler.Delete)
	}

	stockHandler := handlers.NewStockHandler(base, cfg.Stock, cfg.Reports)
	router.POST("/restock", stockHandler.Restock)
	router.GET("/stock-adjustments", stockHandler.Adjustments)
	lowStock := router.Group("/low-stock")
	{
		lowStock.GET("", stockHandler.LowStock)
		lowStock.PATCH("/update", stockHandler.UpdateThreshold)
	}

	dashboardHandler := handlers.NewDashboardHandler(base, cfg.Reports)
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/overview", dashboardHandler.Overview)
		dashboard.GET("/low-stock", dashboardHandler.LowStock)
		dashboard.GET("/sales-trends", dashboardHandler.SalesTrend)
		dashboard.GET("/top-selling", dashboardHandler.TopSelling)
	}

	return router
}
