package models

// TenantStatus enum
type TenantStatus string

const (
	TenantActive    TenantStatus = "Active"
	TenantSuspended TenantStatus = "Suspended"
)

// Tenant is an organizational boundary partitioning users and cases.
type Tenant struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Status TenantStatus `json:"status"`
}
