package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse/internal/config"
	"github.com/salespulse/salespulse/internal/metrics"
	"github.com/salespulse/salespulse/internal/store"
)

type Server struct {
	router  *gin.Engine
	store   *store.Store
	cfg     *config.Config
	metrics *metrics.Registry
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, st *store.Store, reg *metrics.Registry) *Server {
	router := gin.Default()

	server := &Server{
		router:  router,
		store:   st,
		cfg:     cfg,
		metrics: reg,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)

		data := api.Group("/data")
		{
			data.POST("/generate", s.generateData)
			data.POST("/upload", s.uploadData)
			data.GET("/example/customers.csv", s.exampleCustomersCSV)
			data.GET("/example/orders.csv", s.exampleOrdersCSV)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", s.listCustomers)
			customers.GET("/:id", s.getCustomer)
			customers.GET("/:id/kpis", s.getCustomerKPIs)
			customers.GET("/:id/trend", s.getCustomerTrend)
			customers.GET("/:id/categories", s.getCustomerCategories)
			customers.GET("/:id/summary", s.getCustomerSummary)
			customers.GET("/:id/pitch", s.getCustomerPitch)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/overview", s.getOverview)
			analytics.GET("/segments", s.getSegments)
			analytics.GET("/categories", s.getCategories)
			analytics.GET("/revenue", s.getRevenue)
			analytics.GET("/cohorts", s.getCohorts)
		}
	}

	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	customers, orders := s.store.Counts()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "salespulse",
		"version":   "0.1.0",
		"customers": customers,
		"orders":    orders,
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
