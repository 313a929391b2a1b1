package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse/internal/generator"
	"github.com/salespulse/salespulse/internal/store"
)

type generateRequest struct {
	Customers *int   `json:"customers" binding:"omitempty,gt=0"`
	Seed      *int64 `json:"seed"`
}

// generateData regenerates the dataset, optionally overriding the customer
// count and seed from the request body. The store serializes concurrent
// regenerations and keeps the previous dataset until the new one is live.
func (s *Server) generateData(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	cfg := s.cfg.GeneratorSettings()
	if req.Customers != nil {
		cfg.Customers = *req.Customers
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}

	start := time.Now()
	ds, err := generator.Generate(cfg)
	if err != nil {
		var cerr *generator.ConfigError
		if errors.As(err, &cerr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": cerr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.Replace(ds.Customers, ds.Orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.metrics.GenerationRuns.Inc()
	s.metrics.GenerationSec.Observe(time.Since(start).Seconds())
	s.metrics.SetDatasetSize(s.store.Counts())

	c.JSON(http.StatusOK, gin.H{
		"customers": len(ds.Customers),
		"orders":    len(ds.Orders),
		"seed":      cfg.Seed,
	})
}

// uploadData validates a multipart CSV pair and replaces the dataset only
// if every row passes. Rejections list each offending row.
func (s *Server) uploadData(c *gin.Context) {
	customersFile, err := c.FormFile("customers")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customers file is required"})
		return
	}
	ordersFile, err := c.FormFile("orders")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orders file is required"})
		return
	}

	cf, err := customersFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cf.Close()
	of, err := ordersFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer of.Close()

	if err := s.store.Upload(cf, of); err != nil {
		s.metrics.Uploads.WithLabelValues("rejected").Inc()

		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "dataset validation failed",
				"rows":  verr.Errors,
			})
		case errors.Is(err, store.ErrMalformedCSV):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	s.metrics.Uploads.WithLabelValues("accepted").Inc()
	s.metrics.SetDatasetSize(s.store.Counts())

	customers, orders := s.store.Counts()
	c.JSON(http.StatusOK, gin.H{"customers": customers, "orders": orders})
}

func (s *Server) exampleCustomersCSV(c *gin.Context) {
	ds, err := generator.Example()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="customers.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := store.WriteCustomersCSV(c.Writer, ds.Customers); err != nil {
		log.Printf("write example customers csv: %v", err)
	}
}

func (s *Server) exampleOrdersCSV(c *gin.Context) {
	ds, err := generator.Example()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := store.WriteOrdersCSV(c.Writer, ds.Orders); err != nil {
		log.Printf("write example orders csv: %v", err)
	}
}
