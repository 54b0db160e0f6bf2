package dto

import (
	"uniformdesk/internal/domain/catalogs/supplier"
)

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	LeadTimeDays int    `json:"leadTimeDays"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	return supplier.NewSupplier(r.Name, r.Email, r.Phone, r.LeadTimeDays)
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	LeadTimeDays int    `json:"leadTimeDays"`
	Version      int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Name = r.Name
	s.Email = r.Email
	s.Phone = r.Phone
	s.LeadTimeDays = r.LeadTimeDays
	s.Version = r.Version
}
