package entity

import (
	"fmt"
	"strings"
)

// Role rol de un usuario. Conjunto cerrado; no hay herencia entre roles.
type Role string

// Roles válidos para User (orden de privilegio ADMIN > MANAGER > EMPLOYEE, sólo informativo).
const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Roles devuelve todos los roles válidos.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee}
}

// ParseRole acepta el nombre del rol sin distinguir mayúsculas.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("rol desconocido %q", s)
	}
	return r, nil
}

// Valid indica si r pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User representa un usuario del sistema. ID lo asigna la base de datos.
type User struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string // único, comparación exacta (sensible a mayúsculas)
	Password    string // bcrypt hash, nunca plano después de persistir
	Role        Role
}

// FullName nombre y apellido.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
