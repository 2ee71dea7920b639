package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// DefaultAdminUsername usuario administrador de arranque; debe existir
// exactamente uno tras la primera inicialización del store.
const DefaultAdminUsername = "admin"

// User representa un usuario del sistema. PasswordHash es bcrypt y nunca
// viaja hacia la UI: las respuestas usan dto.UserResponse, que no lo incluye.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"password_hash"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ValidRole verifica que el rol sea admin o standard.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStandard
}
