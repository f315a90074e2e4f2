package handlers

import (
	"net/http"
	"time"

	"restaurant_orders/internal/services"

	"github.com/gin-gonic/gin"
)

// SalesHandler serves the dashboard series and today's running total.
type SalesHandler struct {
	salesService services.SalesService
}

func NewSalesHandler(salesService services.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Today handles GET /api/sales/today.
func (h *SalesHandler) Today(c *gin.Context) {
	sales, err := h.salesService.Today()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// Rollup handles GET /api/sales/rollup?granularity=day|week|month|year&from=&to=.
// Dates are YYYY-MM-DD; an unknown granularity falls back to daily buckets.
func (h *SalesHandler) Rollup(c *gin.Context) {
	granularity := c.DefaultQuery("granularity", services.GranularityDay)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = &t
	}

	buckets, err := h.salesService.Rollup(granularity, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"buckets":     buckets,
	})
}
