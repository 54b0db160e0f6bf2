package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/catalogs/uniform"
	"uniformdesk/internal/infrastructure/http/v1/dto"
)

// maxImageBytes caps the uploaded product photo size.
const maxImageBytes = 5 << 20

// UniformHandler handles HTTP requests for the uniform catalog.
type UniformHandler struct {
	*BaseHandler
	service *uniform.Service
}

// NewUniformHandler creates a new uniform handler.
func NewUniformHandler(base *BaseHandler, service *uniform.Service) *UniformHandler {
	return &UniformHandler{BaseHandler: base, service: service}
}

// List handles GET /uniforms?schoolId=
func (h *UniformHandler) List(c *gin.Context) {
	var schoolID *id.ID
	if raw := c.Query("schoolId"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid schoolId").WithDetail("schoolId", raw))
			return
		}
		schoolID = &parsed
	}

	uniforms, err := h.service.List(c.Request.Context(), schoolID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUniforms(uniforms))
}

// GetByBarcode handles GET /uniforms/barcode/:barcode, the POS
// scanner lookup.
func (h *UniformHandler) GetByBarcode(c *gin.Context) {
	u, err := h.service.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUniform(u))
}

// Create handles POST /uniforms (multipart form with optional image).
func (h *UniformHandler) Create(c *gin.Context) {
	var form dto.UniformForm
	if !h.BindForm(c, &form) {
		return
	}

	u, err := form.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	image, ok := h.readImage(c)
	if !ok {
		return
	}
	u.Image = image

	if err := h.service.Create(c.Request.Context(), u); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromUniform(u))
}

// Update handles PUT /uniforms/:id (multipart form with optional image).
func (h *UniformHandler) Update(c *gin.Context) {
	uniformID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var form dto.UniformForm
	if !h.BindForm(c, &form) {
		return
	}

	incoming, err := form.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	u, err := h.service.GetByID(ctx, uniformID)
	if err != nil {
		h.Error(c, err)
		return
	}

	u.SchoolID = incoming.SchoolID
	u.SupplierID = incoming.SupplierID
	u.Name = incoming.Name
	u.Size = incoming.Size
	u.Price = incoming.Price
	u.CostPrice = incoming.CostPrice
	u.Version = form.Version

	// Missing file keeps the stored image.
	if image, ok := h.readImage(c); !ok {
		return
	} else if image != nil {
		u.Image = image
	}

	if err := h.service.Update(ctx, u); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUniform(u))
}

// Delete handles DELETE /uniforms/:id
func (h *UniformHandler) Delete(c *gin.Context) {
	uniformID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), uniformID); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Uniform deleted successfully."})
}

// readImage reads the optional "image" multipart file. Returns
// (nil, true) when no file was sent.
func (h *UniformHandler) readImage(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		h.Error(c, apperror.NewValidation("invalid image upload").WithDetail("error", err.Error()))
		return nil, false
	}
	if fileHeader.Size > maxImageBytes {
		h.Error(c, apperror.NewValidation("image too large").WithDetail("max_bytes", maxImageBytes))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return nil, false
	}
	if len(data) > maxImageBytes {
		h.Error(c, apperror.NewValidation("image too large").WithDetail("max_bytes", maxImageBytes))
		return nil, false
	}
	return data, true
}
