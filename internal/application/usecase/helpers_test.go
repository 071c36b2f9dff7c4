package usecase_test

import (
	"time"

	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

var (
	admin    = access.NewSession(&entity.User{ID: 1, Email: "admin@tienda.co", Role: entity.RoleAdmin}, "t-admin")
	manager  = access.NewSession(&entity.User{ID: 2, Email: "manager@tienda.co", Role: entity.RoleManager}, "t-manager")
	employee = access.NewSession(&entity.User{ID: 3, Email: "empleado@tienda.co", Role: entity.RoleEmployee}, "t-employee")
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
