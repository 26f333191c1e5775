package entity

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "empleado"
)

// User representa un usuario con acceso a la API.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, empleado
}
