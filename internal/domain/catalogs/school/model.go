// Package school provides the School catalog. Schools own the uniforms
// sold for them and the sales made against them.
package school

import (
	"context"
	"strings"
	"time"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
)

// School represents a customer school.
type School struct {
	ID id.ID `db:"id" json:"id"`

	Name      string `db:"name" json:"name"`
	Address   string `db:"address" json:"address"`
	Phone     string `db:"phone" json:"phone"`
	Principal string `db:"principal" json:"principal"`

	// Version is incremented on every update (optimistic locking)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSchool creates a School with required fields.
func NewSchool(name, address, phone, principal string) *School {
	return &School{
		ID:        id.New(),
		Name:      name,
		Address:   address,
		Phone:     phone,
		Principal: principal,
		Version:   1,
	}
}

// Validate checks required fields.
func (s *School) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if strings.TrimSpace(s.Address) == "" {
		return apperror.NewValidation("address is required").WithDetail("field", "address")
	}
	if strings.TrimSpace(s.Phone) == "" {
		return apperror.NewValidation("phone is required").WithDetail("field", "phone")
	}
	if strings.TrimSpace(s.Principal) == "" {
		return apperror.NewValidation("principal is required").WithDetail("field", "principal")
	}
	return nil
}
