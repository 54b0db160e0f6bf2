package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uniformdesk/internal/domain/reports"
	"uniformdesk/internal/domain/stock"
	"uniformdesk/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock ledger and
// restock endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
	reports *reports.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service, reports *reports.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service, reports: reports}
}

// Restock handles POST /restock
func (h *StockHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	uniformID, err := req.ParseUniformID()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.AdjustStock(c.Request.Context(), uniformID, req.Adjustment, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RestockResponse{
		Message:      "Stock adjusted successfully.",
		UpdatedStock: result.NewStock,
	})
}

// LowStock handles GET /low-stock
func (h *StockHandler) LowStock(c *gin.Context) {
	items, err := h.reports.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateThreshold handles PATCH /low-stock/update
func (h *StockHandler) UpdateThreshold(c *gin.Context) {
	var req dto.UpdateThresholdRequest
	if !h.BindJSON(c, &req) {
		return
	}

	uniformID, err := req.ParseUniformID()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.UpdateThreshold(c.Request.Context(), uniformID, req.LowStockThreshold); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Low stock threshold updated."})
}

// Adjustments handles GET /stock-adjustments?startDate&endDate
func (h *StockHandler) Adjustments(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}
	from, to, err := q.Range()
	if err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.service.ListAdjustments(c.Request.Context(), stock.Filter{From: from, To: to})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
