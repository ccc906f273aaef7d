package model

// Role constants mirror the clinic's four staff profiles.
const (
	RoleReceptionist = "receptionist"
	RoleVeterinarian = "veterinarian"
	RoleAdmin        = "admin"
	RoleStockkeeper  = "stockkeeper"
)

// User represents a staff member able to sign in.
type User struct {
	Base
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleReceptionist, RoleVeterinarian, RoleAdmin, RoleStockkeeper:
		return true
	}
	return false
}
