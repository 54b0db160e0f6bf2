package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uniformdesk/internal/domain/reports"
)

// DashboardHandler handles the dashboard report endpoints.
type DashboardHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, service *reports.Service) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, service: service}
}

// Overview handles GET /dashboard/overview
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// LowStock handles GET /dashboard/low-stock
func (h *DashboardHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// SalesTrend handles GET /dashboard/sales-trends
func (h *DashboardHandler) SalesTrend(c *gin.Context) {
	points, err := h.service.SalesTrend(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// TopSelling handles GET /dashboard/top-selling
func (h *DashboardHandler) TopSelling(c *gin.Context) {
	items, err := h.service.TopSelling(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
