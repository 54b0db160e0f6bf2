package dto

import (
	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
)

// RestockRequest is the request body for a manual stock adjustment.
// A positive adjustment restocks, a negative one writes stock off.
type RestockRequest struct {
	UniformID  string `json:"uniformId" binding:"required"`
	Adjustment int    `json:"adjustment"`
	Reason     string `json:"reason" binding:"required"`
}

// ParseUniformID validates and parses the uniform reference.
func (r *RestockRequest) ParseUniformID() (id.ID, error) {
	uniformID, err := id.Parse(r.UniformID)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid uniformId").WithDetail("uniformId", r.UniformID)
	}
	return uniformID, nil
}

// RestockResponse confirms the adjustment with the resulting stock.
type RestockResponse struct {
	Message      string `json:"message"`
	UpdatedStock int    `json:"updatedStock"`
}

// UpdateThresholdRequest is the request body for changing a uniform's
// low-stock threshold.
type UpdateThresholdRequest struct {
	UniformID         string `json:"uniformId" binding:"required"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

// ParseUniformID validates and parses the uniform reference.
func (r *UpdateThresholdRequest) ParseUniformID() (id.ID, error) {
	uniformID, err := id.Parse(r.UniformID)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid uniformId").WithDetail("uniformId", r.UniformID)
	}
	return uniformID, nil
}
