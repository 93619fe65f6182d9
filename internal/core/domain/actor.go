package domain

import (
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
)

// Role is the capacity in which a user acts on an invoice.
type Role string

const (
	RoleVendor     Role = "vendor"
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
)

// AllRoles lists every Role.
var AllRoles = []Role{RoleVendor, RoleAdmin, RoleAccountant}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleVendor, RoleAdmin, RoleAccountant:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, s)
}

// Actor is the authenticated user issuing a workflow command.
// For vendors, UserID is the vendor id that owns the invoice.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}
