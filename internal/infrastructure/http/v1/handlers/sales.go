package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uniformdesk/internal/domain/sales"
	"uniformdesk/internal/infrastructure/http/v1/dto"
)

// SalesHandler handles HTTP requests for the sale workflow.
type SalesHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(base *BaseHandler, service *sales.Service) *SalesHandler {
	return &SalesHandler{BaseHandler: base, service: service}
}

// Checkout handles POST /sales
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	domainReq, err := req.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	sale, err := h.service.Checkout(c.Request.Context(), domainReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Message: "Sale completed successfully.",
		Sale:    sale,
	})
}

// Aggregate handles GET /sales?startDate&endDate
func (h *SalesHandler) Aggregate(c *gin.Context) {
	filter, ok := h.saleFilter(c)
	if !ok {
		return
	}

	agg, err := h.service.Aggregate(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// Report handles GET /sales/report?startDate&endDate
func (h *SalesHandler) Report(c *gin.Context) {
	filter, ok := h.saleFilter(c)
	if !ok {
		return
	}

	list, err := h.service.Report(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Delete handles DELETE /sales/:id — removes the sale and returns its
// quantities to stock.
func (h *SalesHandler) Delete(c *gin.Context) {
	saleID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), saleID); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Sale deleted and stock restored."})
}

func (h *SalesHandler) saleFilter(c *gin.Context) (sales.Filter, bool) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return sales.Filter{}, false
	}
	from, to, err := q.Range()
	if err != nil {
		h.Error(c, err)
		return sales.Filter{}, false
	}
	return sales.Filter{From: from, To: to}, true
}
