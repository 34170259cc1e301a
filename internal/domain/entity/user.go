package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleCobrador = "cobrador"
	RoleCajero   = "cajero"
)

// User es el actor autenticado que ejecuta operaciones del kernel.
// El kernel solo consume su ID; la autenticación vive fuera.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
