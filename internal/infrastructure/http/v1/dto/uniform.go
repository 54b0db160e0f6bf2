package dto

import (
	"encoding/base64"
	"fmt"
	"time"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
	"uniformdesk/internal/domain/catalogs/uniform"
)

// UniformForm is the multipart form for creating or updating a
// uniform. Money fields arrive as text; the image file is read by the
// handler.
type UniformForm struct {
	SchoolID   string `form:"schoolId" binding:"required"`
	SupplierID string `form:"supplierId"`
	Name       string `form:"name" binding:"required"`
	Size       string `form:"size" binding:"required"`
	Price      string `form:"price" binding:"required"`
	CostPrice  string `form:"costPrice" binding:"required"`

	Stock             int `form:"stock"`
	LowStockThreshold int `form:"lowStockThreshold"`

	// Version is required on update, ignored on create.
	Version int `form:"version"`
}

// ToEntity converts the form to a domain entity.
func (f *UniformForm) ToEntity() (*uniform.Uniform, error) {
	schoolID, err := id.Parse(f.SchoolID)
	if err != nil {
		return nil, apperror.NewValidation("invalid schoolId").WithDetail("schoolId", f.SchoolID)
	}

	price, err := types.NewMoneyFromString(f.Price)
	if err != nil {
		return nil, apperror.NewValidation("invalid price").WithDetail("price", f.Price)
	}
	costPrice, err := types.NewMoneyFromString(f.CostPrice)
	if err != nil {
		return nil, apperror.NewValidation("invalid costPrice").WithDetail("costPrice", f.CostPrice)
	}

	u := uniform.NewUniform(schoolID, f.Name, f.Size, price, costPrice)
	u.Stock = f.Stock
	u.LowStockThreshold = f.LowStockThreshold

	if f.SupplierID != "" {
		supplierID, err := id.Parse(f.SupplierID)
		if err != nil {
			return nil, apperror.NewValidation("invalid supplierId").WithDetail("supplierId", f.SupplierID)
		}
		u.SupplierID = &supplierID
	}
	return u, nil
}

// UniformResponse is the response body for a uniform. The image is
// inlined as a base64 data URI so the catalog page can render it
// without a second request.
type UniformResponse struct {
	ID                id.ID       `json:"id"`
	SchoolID          id.ID       `json:"schoolId"`
	SupplierID        *id.ID      `json:"supplierId,omitempty"`
	Name              string      `json:"name"`
	Size              string      `json:"size"`
	Price             types.Money `json:"price"`
	CostPrice         types.Money `json:"costPrice"`
	Stock             int         `json:"stock"`
	LowStockThreshold int         `json:"lowStockThreshold"`
	Barcode           string      `json:"barcode"`
	Image             string      `json:"image,omitempty"`
	Version           int         `json:"version"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// FromUniform creates a response DTO from a domain entity.
func FromUniform(u *uniform.Uniform) *UniformResponse {
	resp := &UniformResponse{
		ID:                u.ID,
		SchoolID:          u.SchoolID,
		SupplierID:        u.SupplierID,
		Name:              u.Name,
		Size:              u.Size,
		Price:             u.Price,
		CostPrice:         u.CostPrice,
		Stock:             u.Stock,
		LowStockThreshold: u.LowStockThreshold,
		Barcode:           u.Barcode,
		Version:           u.Version,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
	if len(u.Image) > 0 {
		resp.Image = fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(u.Image))
	}
	return resp
}

// FromUniforms maps a slice of uniforms to response DTOs.
func FromUniforms(uniforms []*uniform.Uniform) []*UniformResponse {
	out := make([]*UniformResponse, len(uniforms))
	for i, u := range uniforms {
		out[i] = FromUniform(u)
	}
	return out
}
