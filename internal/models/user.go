package models

import (
	"golang.org/x/crypto/bcrypt"
)

// RoleName enum
type RoleName string

const (
	RoleSuperAdmin   RoleName = "SuperAdmin"
	RoleSystemAdmin  RoleName = "SystemAdmin"
	RoleTenantAdmin  RoleName = "TenantAdmin"
	RoleStudentAdmin RoleName = "StudentAdmin"
	RolePathologist  RoleName = "Pathologist"
	RoleResearcher   RoleName = "Researcher"
	RoleStudent      RoleName = "Student"
	RoleDemo         RoleName = "Demo"
)

// User represents a user in the system. TenantID is nil for users that are
// not bound to a tenant (global admins, demo accounts).
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Role           RoleName `json:"role"`
	TenantID       *string  `json:"tenantId"`
	FeedbackPoints int      `json:"feedbackPoints"`
	Password       string   `json:"-"` // bcrypt hash, never sent in JSON
}

// SetPassword hashes a password and sets it on the user.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password.
// Seeded demo users carry no hash and accept any password.
func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return true
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Permission enum
type Permission string

const (
	PermViewCases        Permission = "view:cases"
	PermManageCases      Permission = "manage:cases"
	PermViewUsers        Permission = "view:users"
	PermManageUsers      Permission = "manage:users"
	PermViewRoles        Permission = "view:roles"
	PermManageRoles      Permission = "manage:roles"
	PermViewSystemHealth Permission = "view:system-health"
	PermViewReports      Permission = "view:reports"
	PermRunAIAnalysis    Permission = "run:ai-analysis"
)

// Role describes a named role and the permissions it grants.
type Role struct {
	ID          string       `json:"id"`
	Name        RoleName     `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission reports whether the role grants the given permission.
func (r Role) HasPermission(p Permission) bool {
	for _, perm := range r.Permissions {
		if perm == p {
			return true
		}
	}
	return false
}

// PermissionDescriptor pairs a permission with a human-readable description
// for the role management screens.
type PermissionDescriptor struct {
	ID          Permission `json:"id"`
	Description string     `json:"description"`
}
