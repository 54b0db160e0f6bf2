package dto

import (
	"uniformdesk/internal/domain/catalogs/school"
)

// CreateSchoolRequest is the request body for creating a school.
type CreateSchoolRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Principal string `json:"principal"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSchoolRequest) ToEntity() *school.School {
	return school.NewSchool(r.Name, r.Address, r.Phone, r.Principal)
}

// UpdateSchoolRequest is the request body for updating a school.
type UpdateSchoolRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Principal string `json:"principal"`
	Version   int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSchoolRequest) ApplyTo(s *school.School) {
	s.Name = r.Name
	s.Address = r.Address
	s.Phone = r.Phone
	s.Principal = r.Principal
	s.Version = r.Version
}
