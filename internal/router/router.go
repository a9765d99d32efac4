// Package router assembles the HTTP API: middleware, routes and their handlers.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finboard/internal/config"
	"finboard/internal/handlers"
	"finboard/internal/middleware"
	"finboard/internal/services"
	"finboard/internal/taxonomy"

	_ "finboard/internal/docs" // Import swagger docs
)

// Services bundles the business services the routes depend on.
type Services struct {
	Transactions services.TransactionServicer
	Rules        services.RuleServicer
	Batches      services.BatchServicer
	Audit        services.AuditServicer
}

// NewServices wires the default GORM-backed services.
func NewServices(db *gorm.DB, table *taxonomy.Table, publisher services.EventPublisher) Services {
	return Services{
		Transactions: services.NewTransactionService(db, table),
		Rules:        services.NewRuleService(db, table),
		Batches:      services.NewBatchService(db, publisher),
		Audit:        services.NewAuditService(db),
	}
}

// New builds the gin engine serving /api/v1.
func New(cfg *config.Config, svc Services, table *taxonomy.Table) *gin.Engine {
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	ruleHandler := handlers.NewRuleHandler(svc.Rules, svc.Audit)
	batchHandler := handlers.NewBatchHandler(svc.Batches, svc.Audit, cfg.MaxUploadBytes)
	taxonomyHandler := handlers.NewTaxonomyHandler(table)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	if cfg.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = cfg.MaxUploadBytes
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "taxonomy_version": table.Version()})
	})

	v1 := router.Group("/api/v1")

	// Unattended statement uploads from the import pipeline
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/batches", batchHandler.ImportBatch)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/taxonomy", taxonomyHandler.GetTaxonomy)
	protected.GET("/summary", transactionHandler.GetSummary)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	rules := protected.Group("/rules")
	rules.POST("", ruleHandler.CreateRule)
	rules.GET("", ruleHandler.ListRules)
	rules.POST("/apply", ruleHandler.ApplyRules)

	batches := protected.Group("/batches")
	batches.POST("", batchHandler.ImportBatch)
	batches.GET("", batchHandler.ListBatches)
	batches.DELETE("/:id", batchHandler.DeleteBatch)

	return router
}
