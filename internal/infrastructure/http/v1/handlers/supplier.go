package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uniformdesk/internal/domain/catalogs/supplier"
	"uniformdesk/internal/infrastructure/http/v1/dto"
)

// SupplierHandler handles HTTP requests for the supplier catalog.
type SupplierHandler struct {
	*BaseHandler
	service *supplier.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	return &SupplierHandler{BaseHandler: base, service: service}
}

// List handles GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// Update handles PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	s, err := h.service.GetByID(ctx, supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(s)
	if err := h.service.Update(ctx, s); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), supplierID); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Supplier deleted successfully."})
}
