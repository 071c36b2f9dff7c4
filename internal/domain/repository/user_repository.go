package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no existe la fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*entity.User, error)
	// UpdateRole y DeleteByEmail devuelven false si ninguna fila coincidió.
	UpdateRole(ctx context.Context, email string, role entity.Role) (bool, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}
