// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"
	"regexp"
	"strings"
	"time"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Supplier represents a uniform supplier.
type Supplier struct {
	ID id.ID `db:"id" json:"id"`

	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`

	// LeadTimeDays is the expected delivery delay for restock orders
	LeadTimeDays int `db:"lead_time_days" json:"leadTimeDays"`

	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSupplier creates a Supplier with required fields.
func NewSupplier(name, email, phone string, leadTimeDays int) *Supplier {
	return &Supplier{
		ID:           id.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		LeadTimeDays: leadTimeDays,
		Version:      1,
	}
}

// Validate checks required fields.
func (s *Supplier) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if !emailRe.MatchString(s.Email) {
		return apperror.NewValidation("invalid email").WithDetail("field", "email")
	}
	if strings.TrimSpace(s.Phone) == "" {
		return apperror.NewValidation("phone is required").WithDetail("field", "phone")
	}
	if s.LeadTimeDays < 0 {
		return apperror.NewValidation("lead time must not be negative").WithDetail("field", "leadTimeDays")
	}
	return nil
}
