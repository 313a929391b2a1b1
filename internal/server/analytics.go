package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse/internal/analyze"
)

func (s *Server) getOverview(c *gin.Context) {
	customers, orders := s.store.Snapshot()
	c.JSON(http.StatusOK, analyze.BusinessOverview(customers, orders))
}

func (s *Server) getSegments(c *gin.Context) {
	customers, _ := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"segments": analyze.SegmentDistribution(customers)})
}

func (s *Server) getCategories(c *gin.Context) {
	_, orders := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"categories": analyze.CategoryShare(orders)})
}

// getRevenue returns the zero-filled revenue rollup. Interval defaults to
// weekly; from/to bound the orders by date before bucketing.
func (s *Server) getRevenue(c *gin.Context) {
	_, orders := s.store.Snapshot()

	interval, err := analyze.ParseInterval(c.DefaultQuery("interval", "week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var filters analyze.Filters
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a YYYY-MM-DD date"})
			return
		}
		filters.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a YYYY-MM-DD date"})
			return
		}
		filters.To = t
	}
	_, orders = filters.Apply(nil, orders)

	c.JSON(http.StatusOK, gin.H{
		"interval": interval,
		"revenue":  analyze.RevenueOverTime(orders, interval),
	})
}

func (s *Server) getCohorts(c *gin.Context) {
	customers, orders := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"cohorts": analyze.Cohorts(customers, orders)})
}
