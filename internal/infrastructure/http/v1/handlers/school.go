package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uniformdesk/internal/domain/catalogs/school"
	"uniformdesk/internal/infrastructure/http/v1/dto"
)

// SchoolHandler handles HTTP requests for the school catalog.
type SchoolHandler struct {
	*BaseHandler
	service *school.Service
}

// NewSchoolHandler creates a new school handler.
func NewSchoolHandler(base *BaseHandler, service *school.Service) *SchoolHandler {
	return &SchoolHandler{BaseHandler: base, service: service}
}

// List handles GET /schools
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// Create handles POST /schools
func (h *SchoolHandler) Create(c *gin.Context) {
	var req dto.CreateSchoolRequest
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

// Update handles PUT /schools/:id
func (h *SchoolHandler) Update(c *gin.Context) {
	schoolID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSchoolRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	s, err := h.service.GetByID(ctx, schoolID)
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

// Delete handles DELETE /schools/:id
func (h *SchoolHandler) Delete(c *gin.Context) {
	schoolID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), schoolID); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "School deleted successfully."})
}
