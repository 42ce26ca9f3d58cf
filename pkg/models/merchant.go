package models

import "time"

// Merchant is a canonical reference entity: the authoritative, correctly
// spelled name a noisy description should resolve to. The Name is the
// matching key; DisplayName, when set, is what gets reported back to callers.
type Merchant struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	NormalizedName string     `json:"normalized_name" db:"normalized_name"`
	DisplayName    *string    `json:"display_name,omitempty" db:"display_name"`
	Domain         *string    `json:"domain,omitempty" db:"domain"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	Position       int64      `json:"position" db:"position"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Display returns the name to report for this merchant.
func (m *Merchant) Display() string {
	if m.DisplayName != nil && *m.DisplayName != "" {
		return *m.DisplayName
	}
	return m.Name
}

// DomainValue returns the merchant's domain or "" when none is known.
func (m *Merchant) DomainValue() string {
	if m.Domain == nil {
		return ""
	}
	return *m.Domain
}

// CreateMerchantRequest is the request to add a merchant to the reference list
type CreateMerchantRequest struct {
	Name        string  `json:"name" validate:"required"`
	DisplayName *string `json:"display_name,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// UpdateMerchantRequest is the request to update a merchant
type UpdateMerchantRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
