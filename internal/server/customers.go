package server

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salespulse/salespulse/internal/analyze"
	"github.com/salespulse/salespulse/internal/models"
	"github.com/salespulse/salespulse/internal/pitch"
)

// listCustomers returns the customer table, optionally filtered by segment
// and sorted by one of the profile columns.
func (s *Server) listCustomers(c *gin.Context) {
	customers, _ := s.store.Snapshot()

	if seg := c.Query("segment"); seg != "" {
		if !models.ValidSegment(seg) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown segment " + strconv.Quote(seg)})
			return
		}
		customers, _ = analyze.Filters{Segment: seg}.Apply(customers, nil)
	}

	direction := c.DefaultQuery("order", "desc")
	if direction != "asc" && direction != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
		return
	}

	sorted, err := analyze.SortCustomers(customers, c.DefaultQuery("sort", analyze.SortLifetimeValue), direction == "desc")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": sorted, "count": len(sorted)})
}

func (s *Server) getCustomer(c *gin.Context) {
	customers, _ := s.store.Snapshot()

	profile, err := analyze.Profile(customers, c.Param("id"))
	if err != nil {
		s.customerError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) getCustomerKPIs(c *gin.Context) {
	customers, orders := s.store.Snapshot()

	kpis, err := analyze.CustomerKPIs(customers, orders, c.Param("id"), time.Now().UTC())
	if err != nil {
		s.customerError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (s *Server) getCustomerTrend(c *gin.Context) {
	customers, orders := s.store.Snapshot()

	id := c.Param("id")
	if _, err := analyze.Profile(customers, id); err != nil {
		s.customerError(c, err)
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "90"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}

	points := analyze.SpendTrend(orders, id, days, time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"customer_id": id, "days": days, "trend": points})
}

func (s *Server) getCustomerCategories(c *gin.Context) {
	customers, orders := s.store.Snapshot()

	id := c.Param("id")
	if _, err := analyze.Profile(customers, id); err != nil {
		s.customerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer_id": id, "categories": analyze.CustomerCategories(orders, id)})
}

// getCustomerSummary returns the plain-text KPI summary used for narration
// and exports.
func (s *Server) getCustomerSummary(c *gin.Context) {
	customers, orders := s.store.Snapshot()

	id := c.Param("id")
	profile, err := analyze.Profile(customers, id)
	if err != nil {
		s.customerError(c, err)
		return
	}
	kpis, err := analyze.CustomerKPIs(customers, orders, id, time.Now().UTC())
	if err != nil {
		s.customerError(c, err)
		return
	}

	c.String(http.StatusOK, analyze.SummaryText(profile.Name, kpis))
}

func (s *Server) getCustomerPitch(c *gin.Context) {
	customers, orders := s.store.Snapshot()

	id := c.Param("id")
	profile, err := analyze.Profile(customers, id)
	if err != nil {
		s.customerError(c, err)
		return
	}
	kpis, err := analyze.CustomerKPIs(customers, orders, id, time.Now().UTC())
	if err != nil {
		s.customerError(c, err)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	c.JSON(http.StatusOK, gin.H{
		"customer_id":     id,
		"kpis":            kpis,
		"pitch":           pitch.Generate(*profile, rng),
		"recommendations": pitch.Recommendations(*profile, rng),
	})
}

func (s *Server) customerError(c *gin.Context, err error) {
	if errors.Is(err, analyze.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
